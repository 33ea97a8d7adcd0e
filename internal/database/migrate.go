package database

import (
	"context"
	"fmt"
)

// schema contains the DDL statements executed on startup. Statements are
// idempotent so repeated startups against the same database are safe.
//
// Referential rules: tasks reference users with RESTRICT (a user who is
// assigned to or created a task cannot be deleted) and teams with CASCADE
// (deleting a team removes its tasks). A task may exist without a team.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin', 'manage', 'employee')),
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS teams (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL CHECK (status IN ('todo', 'in_progress', 'done')),
		assigned_to UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		created_by  UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		team_id     UUID REFERENCES teams(id) ON DELETE CASCADE,
		due_date    TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS tasks_assigned_to_idx ON tasks (assigned_to)`,
	`CREATE INDEX IF NOT EXISTS tasks_team_id_idx ON tasks (team_id)`,
}

// Migrate applies the schema to the connected database.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
