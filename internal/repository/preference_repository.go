package repository

import (
	"context"
	"encoding/json"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/match"

	"github.com/google/uuid"
)

type PreferenceRepository interface {
	Upsert(ctx context.Context, p match.Preferences) error
}

type PostgresPreferenceRepository struct {
	db database.DB
}

func NewPostgresPreferenceRepository(db database.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

func (r *PostgresPreferenceRepository) Upsert(ctx context.Context, p match.Preferences) error {
	if p.UserID == uuid.Nil {
		return nil
	}

	locationPref, err := marshalOrNil(p.LocationPreference)
	if err != nil {
		return err
	}
	availabilityPref, err := marshalOrNil(p.AvailabilityPreference)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO matching_preferences
			(id, user_id, preferred_categories, preferred_skills, location_preference, availability_preference)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id) DO UPDATE SET
			preferred_categories = EXCLUDED.preferred_categories,
			preferred_skills = EXCLUDED.preferred_skills,
			location_preference = EXCLUDED.location_preference,
			availability_preference = EXCLUDED.availability_preference,
			updated_at = now()`,
		uuid.New(), p.UserID, p.PreferredCategories, p.PreferredSkills, locationPref, availabilityPref,
	)
	return err
}

func marshalOrNil(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}
