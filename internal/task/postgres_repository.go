package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// refError maps a FK violation to the sentinel for the broken reference.
func refError(pgErr *pgconn.PgError) error {
	if strings.Contains(pgErr.ConstraintName, "team") {
		return ErrTeamRefNotFound
	}
	return ErrUserRefNotFound
}

// Create inserts a new task record.
func (r *PostgresRepository) Create(ctx context.Context, t *Task) error {
	if t.Status == "" {
		t.Status = StatusTodo
	}

	query := `
		INSERT INTO tasks (title, description, status, assigned_to, created_by, team_id, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.Status,
		t.AssignedTo,
		t.CreatedBy,
		t.TeamID,
		t.DueDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return refError(pgErr)
		}
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// GetByID retrieves a single task by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	query := `
		SELECT id, title, description, status, assigned_to, created_by, team_id, due_date,
		       created_at, updated_at
		FROM tasks
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// List retrieves tasks matching the filter, ordered by creation time.
// All set filters combine with AND; the due date filter compares only
// the calendar date.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", argIdx))
		args = append(args, *filter.AssignedTo)
		argIdx++
	}
	if filter.TeamID != nil {
		conditions = append(conditions, fmt.Sprintf("team_id = $%d", argIdx))
		args = append(args, *filter.TeamID)
		argIdx++
	}
	if filter.DueDate != nil {
		conditions = append(conditions, fmt.Sprintf("due_date::date = $%d::date", argIdx))
		args = append(args, *filter.DueDate)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, status, assigned_to, created_by, team_id, due_date,
		       created_at, updated_at
		FROM tasks
		%s
		ORDER BY created_at ASC`, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status,
			&t.AssignedTo, &t.CreatedBy, &t.TeamID, &t.DueDate,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, nil
}

// Update replaces all mutable fields of a task.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Task, error) {
	query := `
		UPDATE tasks
		SET title = $1,
		    description = $2,
		    status = $3,
		    assigned_to = $4,
		    created_by = $5,
		    team_id = $6,
		    due_date = $7,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING id, title, description, status, assigned_to, created_by, team_id, due_date,
		          created_at, updated_at`

	t, err := r.scanOne(ctx, query,
		fields.Title,
		fields.Description,
		fields.Status,
		fields.AssignedTo,
		fields.CreatedBy,
		fields.TeamID,
		fields.DueDate,
		id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, refError(pgErr)
		}
		return nil, err
	}

	return t, nil
}

// UpdateStatus updates only the status of a task, leaving every other
// field untouched. Used for the assignee's status-only update path.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Task, error) {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, title, description, status, assigned_to, created_by, team_id, due_date,
		          created_at, updated_at`

	return r.scanOne(ctx, query, status, id)
}

// Delete removes a task by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// scanOne scans a single Task row from a query. Returns ErrTaskNotFound if no rows.
func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Task, error) {
	var t Task
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status,
		&t.AssignedTo, &t.CreatedBy, &t.TeamID, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return &t, nil
}
