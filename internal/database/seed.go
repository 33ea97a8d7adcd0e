package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/user"
)

// demo accounts created by SeedDemoUsers. Fixed credentials, intended
// for local development only.
var demoUsers = []struct {
	FullName string
	Email    string
	Role     user.Role
	Password string
}{
	{FullName: "Admin", Email: "admin@demo.com", Role: user.RoleAdmin, Password: "Admin123!"},
	{FullName: "Manager", Email: "manager@demo.com", Role: user.RoleManage, Password: "Manager123!"},
	{FullName: "Employee", Email: "employee@demo.com", Role: user.RoleEmployee, Password: "Employee123!"},
}

// SeedDemoUsers creates one user per role (admin, manage, employee) with
// well-known demo credentials. Users that already exist are left alone.
func SeedDemoUsers(ctx context.Context, userRepo user.Repository, bcryptCost int) error {
	for _, seed := range demoUsers {
		_, err := userRepo.GetByEmail(ctx, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("checking seed user %s: %w", seed.Email, err)
		}

		hash, err := auth.HashPassword(seed.Password, bcryptCost)
		if err != nil {
			return fmt.Errorf("hashing seed password: %w", err)
		}

		u := &user.User{
			FullName:     seed.FullName,
			Email:        seed.Email,
			Role:         seed.Role,
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("creating seed user %s: %w", seed.Email, err)
		}

		slog.Info("seeded demo user", "email", seed.Email, "role", seed.Role)
	}

	return nil
}
