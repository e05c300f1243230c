package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/profile"
	"skillbridge/internal/domain/task"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository interface {
	// GetPublishedByID returns ErrTaskNotFound for missing tasks and for
	// tasks in any non-matchable lifecycle status.
	GetPublishedByID(ctx context.Context, id uuid.UUID) (task.TaskProfile, error)
	ListPublishedByCreatorRole(ctx context.Context, role profile.Role, excludeCreator uuid.UUID, limit int) ([]task.TaskProfile, error)
	ListPublishedSince(ctx context.Context, since time.Time) ([]uuid.UUID, error)
}

type PostgresTaskRepository struct {
	db database.DB
}

func NewPostgresTaskRepository(db database.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `t.id, t.created_by, u.user_type,
	COALESCE(t.title, ''), COALESCE(t.description, ''), COALESCE(t.category, ''),
	COALESCE(t.tags, '{}'), COALESCE(t.skills_required, '{}'),
	COALESCE(t.location, ''), COALESCE(t.is_virtual, false),
	t.scheduled_date, t.status, t.created_at`

func (r *PostgresTaskRepository) GetPublishedByID(ctx context.Context, id uuid.UUID) (task.TaskProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks t
		 JOIN users u ON t.created_by = u.id
		 WHERE t.id = $1 AND t.status = 'published'`,
		id,
	)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return task.TaskProfile{}, ErrTaskNotFound
		}
		return task.TaskProfile{}, err
	}
	return t, nil
}

func (r *PostgresTaskRepository) ListPublishedByCreatorRole(ctx context.Context, role profile.Role, excludeCreator uuid.UUID, limit int) ([]task.TaskProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks t
		 JOIN users u ON t.created_by = u.id
		 WHERE u.user_type = $1 AND t.status = 'published' AND t.created_by != $2
		 ORDER BY t.created_at DESC
		 LIMIT $3`,
		string(role), excludeCreator, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]task.TaskProfile, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTaskRepository) ListPublishedSince(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM tasks
		 WHERE status = 'published' AND created_at >= $1
		 ORDER BY created_at DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type taskRow interface {
	Scan(dest ...any) error
}

func scanTask(row taskRow) (task.TaskProfile, error) {
	var t task.TaskProfile
	if err := row.Scan(
		&t.ID, &t.CreatedBy, &t.CreatorRole,
		&t.Title, &t.Description, &t.Category,
		&t.Tags, &t.SkillsRequired,
		&t.Location, &t.IsVirtual,
		&t.ScheduledDate, &t.Status, &t.CreatedAt,
	); err != nil {
		return task.TaskProfile{}, err
	}
	return t, nil
}
