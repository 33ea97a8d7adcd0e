// Package authz holds the role-based authorization decision table. It is
// a pure function of (role, operation) with no storage or transport
// dependencies; the one ownership-sensitive case (an employee updating a
// task assigned to them) is expressed through UpdateTaskScope.
package authz

import "github.com/taskforge/taskforge/internal/user"

// Operation identifies an action subject to authorization.
type Operation string

const (
	OpCreateTeam Operation = "create_team"
	OpUpdateTeam Operation = "update_team"
	OpDeleteTeam Operation = "delete_team"
	OpCreateUser Operation = "create_user"
	OpUpdateUser Operation = "update_user"
	OpDeleteUser Operation = "delete_user"
	OpCreateTask Operation = "create_task"
	OpUpdateTask Operation = "update_task"
	OpDeleteTask Operation = "delete_task"
	OpRead       Operation = "read"
)

// allowed is the decision table: which roles may perform each operation.
// OpUpdateTask here covers the full-field update; the assignee's
// status-only path is handled by UpdateTaskScope.
var allowed = map[Operation]map[user.Role]bool{
	OpCreateTeam: {user.RoleAdmin: true},
	OpUpdateTeam: {user.RoleAdmin: true},
	OpDeleteTeam: {user.RoleAdmin: true},
	OpCreateUser: {user.RoleAdmin: true},
	OpUpdateUser: {user.RoleAdmin: true},
	OpDeleteUser: {user.RoleAdmin: true},
	OpCreateTask: {user.RoleAdmin: true, user.RoleManage: true},
	OpUpdateTask: {user.RoleAdmin: true, user.RoleManage: true},
	OpDeleteTask: {user.RoleAdmin: true},
	OpRead:       {user.RoleAdmin: true, user.RoleManage: true, user.RoleEmployee: true},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role user.Role, op Operation) bool {
	return allowed[op][role]
}

// Scope describes how much of a task an update may touch.
type Scope int

const (
	// ScopeNone denies the update entirely.
	ScopeNone Scope = iota
	// ScopeStatusOnly permits changing only the status field.
	ScopeStatusOnly
	// ScopeFull permits replacing every mutable field.
	ScopeFull
)

// UpdateTaskScope resolves the task-update special case: admins and
// managers get full updates on any task; an employee may update only the
// status of a task assigned to them, and nothing on any other task.
func UpdateTaskScope(role user.Role, isAssignee bool) Scope {
	if Allowed(role, OpUpdateTask) {
		return ScopeFull
	}
	if role == user.RoleEmployee && isAssignee {
		return ScopeStatusOnly
	}
	return ScopeNone
}
