package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/match"
	"skillbridge/internal/domain/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrMatchNotFound = errors.New("match not found")
)

type MatchResultUpsert struct {
	TaskID    uuid.UUID
	UserID    uuid.UUID
	Score     float64
	Breakdown scoring.Breakdown
}

// AcceptedMatch is an analytics projection of an accepted result joined with
// its task title and candidate name.
type AcceptedMatch struct {
	TaskID    uuid.UUID
	UserID    uuid.UUID
	Score     float64
	TaskTitle string
	FirstName string
	LastName  string
}

type MatchResultRepository interface {
	// Upsert inserts or refreshes the (task, user) row. The decision status
	// is never touched here; only SetStatus changes it.
	Upsert(ctx context.Context, m MatchResultUpsert) error
	GetByID(ctx context.Context, id uuid.UUID) (match.Result, error)
	SetStatus(ctx context.Context, id uuid.UUID, status match.Status) error
	TopAccepted(ctx context.Context, since time.Time, limit int) ([]AcceptedMatch, error)
	// WithTx returns a view of the repository bound to an open transaction.
	WithTx(tx database.Tx) MatchResultRepository
}

type PostgresMatchResultRepository struct {
	db database.Querier
}

func NewPostgresMatchResultRepository(db database.DB) *PostgresMatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

func (r *PostgresMatchResultRepository) WithTx(tx database.Tx) MatchResultRepository {
	return &PostgresMatchResultRepository{db: tx}
}

func (r *PostgresMatchResultRepository) Upsert(ctx context.Context, m MatchResultUpsert) error {
	if m.TaskID == uuid.Nil || m.UserID == uuid.Nil {
		return nil
	}

	breakdown, err := json.Marshal(m.Breakdown)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO matching_results (id, task_id, user_id, match_score, match_breakdown)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (task_id, user_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			match_breakdown = EXCLUDED.match_breakdown,
			updated_at = now()`,
		uuid.New(), m.TaskID, m.UserID, m.Score, breakdown,
	)
	return err
}

func (r *PostgresMatchResultRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Result, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, task_id, user_id, match_score, match_breakdown, status, created_at, updated_at
		 FROM matching_results
		 WHERE id = $1`,
		id,
	)

	var m match.Result
	var breakdown []byte
	if err := row.Scan(&m.ID, &m.TaskID, &m.UserID, &m.Score, &breakdown, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return match.Result{}, ErrMatchNotFound
		}
		return match.Result{}, err
	}

	if len(breakdown) > 0 {
		_ = json.Unmarshal(breakdown, &m.Breakdown)
	}
	return m, nil
}

func (r *PostgresMatchResultRepository) SetStatus(ctx context.Context, id uuid.UUID, status match.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE matching_results SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *PostgresMatchResultRepository) TopAccepted(ctx context.Context, since time.Time, limit int) ([]AcceptedMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT mr.task_id, mr.user_id, mr.match_score,
		        COALESCE(t.title, ''), COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		 FROM matching_results mr
		 JOIN tasks t ON mr.task_id = t.id
		 JOIN users u ON mr.user_id = u.id
		 WHERE mr.updated_at >= $1 AND mr.status = 'accepted'
		 ORDER BY mr.match_score DESC
		 LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AcceptedMatch, 0)
	for rows.Next() {
		var a AcceptedMatch
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.Score, &a.TaskTitle, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
