package repository

import (
	"context"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/match"

	"github.com/google/uuid"
)

type ActionStat struct {
	Action   string
	Count    int64
	AvgScore float64
}

// AnalyticsRepository is append-only: rows are inserted on every recorded
// action and never updated or deleted.
type AnalyticsRepository interface {
	Insert(ctx context.Context, e match.AnalyticsEntry) error
	CountByAction(ctx context.Context, since time.Time) ([]ActionStat, error)
	// WithTx returns a view of the repository bound to an open transaction.
	WithTx(tx database.Tx) AnalyticsRepository
}

type PostgresAnalyticsRepository struct {
	db database.Querier
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) WithTx(tx database.Tx) AnalyticsRepository {
	return &PostgresAnalyticsRepository{db: tx}
}

func (r *PostgresAnalyticsRepository) Insert(ctx context.Context, e match.AnalyticsEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO matching_analytics (id, match_type, user_id, task_id, match_score, action)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		uuid.New(), e.MatchType, e.UserID, e.TaskID, e.Score, string(e.Action),
	)
	return err
}

func (r *PostgresAnalyticsRepository) CountByAction(ctx context.Context, since time.Time) ([]ActionStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT action, COUNT(*), COALESCE(AVG(match_score), 0)
		 FROM matching_analytics
		 WHERE created_at >= $1
		 GROUP BY action`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActionStat, 0)
	for rows.Next() {
		var s ActionStat
		if err := rows.Scan(&s.Action, &s.Count, &s.AvgScore); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
