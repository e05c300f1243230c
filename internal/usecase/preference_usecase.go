package usecase

import (
	"context"
	"log"
	"strings"

	"skillbridge/internal/domain/match"
	"skillbridge/internal/repository"

	"github.com/google/uuid"
)

type PreferenceUsecase interface {
	// SavePreferences replaces the caller's stored bias layer wholesale.
	SavePreferences(ctx context.Context, p match.Preferences) error
}

type Preference struct {
	prefs  repository.PreferenceRepository
	logger *log.Logger
}

func NewPreferenceUsecase(prefs repository.PreferenceRepository, logger *log.Logger) *Preference {
	if logger == nil {
		logger = log.Default()
	}
	return &Preference{prefs: prefs, logger: logger}
}

func (u *Preference) SavePreferences(ctx context.Context, p match.Preferences) error {
	if p.UserID == uuid.Nil {
		return ErrUnauthorized
	}

	p.PreferredCategories = cleanTerms(p.PreferredCategories)
	p.PreferredSkills = cleanTerms(p.PreferredSkills)

	if err := u.prefs.Upsert(ctx, p); err != nil {
		u.logger.Printf("[Preference] Upsert failed user_id=%s err=%v", p.UserID, err)
		return ErrInternal
	}
	return nil
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
