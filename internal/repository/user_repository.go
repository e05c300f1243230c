package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// CandidateUser pairs a profile with its engagement aggregate so one pool
// query feeds the scorer without per-candidate round trips.
type CandidateUser struct {
	Profile profile.UserProfile
	History profile.History
}

type UserRepository interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (profile.UserProfile, error)
	GetHistory(ctx context.Context, id uuid.UUID) (profile.History, error)
	ListActiveByRole(ctx context.Context, role profile.Role) ([]CandidateUser, error)
	ListCollaborators(ctx context.Context, role profile.Role, exclude uuid.UUID, limit int) ([]CandidateUser, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (profile.UserProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_type, COALESCE(first_name, ''), COALESCE(last_name, ''),
		        COALESCE(skills, '{}'), COALESCE(interests, '{}'),
		        COALESCE(location, ''), availability, is_active, created_at
		 FROM users
		 WHERE id = $1 AND is_active = true`,
		id,
	)

	u, err := scanUserProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return profile.UserProfile{}, ErrUserNotFound
		}
		return profile.UserProfile{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetHistory(ctx context.Context, id uuid.UUID) (profile.History, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(tp.id), AVG(tp.rating), MAX(tp.completed_at)
		 FROM task_participants tp
		 WHERE tp.participant_id = $1`,
		id,
	)

	var h profile.History
	var lastActivity *time.Time
	if err := row.Scan(&h.CompletedTasks, &h.AverageRating, &lastActivity); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return profile.History{}, nil
		}
		return profile.History{}, err
	}
	if lastActivity != nil {
		h.LastActivity = *lastActivity
	}
	return h, nil
}

func (r *PostgresUserRepository) ListActiveByRole(ctx context.Context, role profile.Role) ([]CandidateUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.user_type, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		        COALESCE(u.skills, '{}'), COALESCE(u.interests, '{}'),
		        COALESCE(u.location, ''), u.availability, u.is_active, u.created_at,
		        COUNT(tp.id), AVG(tp.rating), MAX(tp.completed_at)
		 FROM users u
		 LEFT JOIN task_participants tp ON u.id = tp.participant_id
		 WHERE u.user_type = $1 AND u.is_active = true
		 GROUP BY u.id`,
		string(role),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *PostgresUserRepository) ListCollaborators(ctx context.Context, role profile.Role, exclude uuid.UUID, limit int) ([]CandidateUser, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.user_type, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		        COALESCE(u.skills, '{}'), COALESCE(u.interests, '{}'),
		        COALESCE(u.location, ''), u.availability, u.is_active, u.created_at,
		        COUNT(tp.id), AVG(tp.rating), MAX(tp.completed_at)
		 FROM users u
		 LEFT JOIN task_participants tp ON u.id = tp.participant_id
		 WHERE u.user_type = $1 AND u.is_active = true AND u.id != $2
		 GROUP BY u.id
		 ORDER BY COUNT(tp.id) DESC, AVG(tp.rating) DESC NULLS LAST
		 LIMIT $3`,
		string(role), exclude, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows database.Rows) ([]CandidateUser, error) {
	out := make([]CandidateUser, 0)
	for rows.Next() {
		var c CandidateUser
		var availabilityJSON []byte
		var lastActivity *time.Time

		if err := rows.Scan(
			&c.Profile.ID, &c.Profile.Role, &c.Profile.FirstName, &c.Profile.LastName,
			&c.Profile.Skills, &c.Profile.Interests,
			&c.Profile.Location, &availabilityJSON, &c.Profile.Active, &c.Profile.CreatedAt,
			&c.History.CompletedTasks, &c.History.AverageRating, &lastActivity,
		); err != nil {
			return nil, err
		}

		c.Profile.Availability = parseAvailability(availabilityJSON)
		if lastActivity != nil {
			c.History.LastActivity = *lastActivity
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUserProfile(row database.Row) (profile.UserProfile, error) {
	var u profile.UserProfile
	var availabilityJSON []byte

	if err := row.Scan(
		&u.ID, &u.Role, &u.FirstName, &u.LastName,
		&u.Skills, &u.Interests,
		&u.Location, &availabilityJSON, &u.Active, &u.CreatedAt,
	); err != nil {
		return profile.UserProfile{}, err
	}

	u.Availability = parseAvailability(availabilityJSON)
	return u, nil
}

// Availability is stored by the account service as {"times": [{start, end}]}.
// Malformed or absent data degrades to "no declared windows".
func parseAvailability(raw []byte) []profile.TimeWindow {
	if len(raw) == 0 {
		return nil
	}

	var doc struct {
		Times []profile.TimeWindow `json:"times"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc.Times
}
