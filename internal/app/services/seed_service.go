package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultCategories are created by the seed command
var DefaultCategories = []string{
	"Children",
	"Classics",
	"History",
	"Poetry",
	"Reference",
	"Science",
	"Young Adult",
}

// SeedService fills a fresh database with the records the console expects
type SeedService struct {
	categories CategoryStore
	auth       *AuthService
	logger     zerolog.Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(categories CategoryStore, auth *AuthService, logger zerolog.Logger) *SeedService {
	return &SeedService{categories: categories, auth: auth, logger: logger}
}

// Run inserts the default categories and, when username is set, the
// superuser. Running it again changes nothing.
func (s *SeedService) Run(ctx context.Context, username, password string) error {
	added, err := s.categories.EnsureNames(ctx, DefaultCategories)
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}
	s.logger.Info().Int64("added", added).Msg("Default categories seeded")

	if username == "" {
		return nil
	}
	created, err := s.auth.EnsureSuperuser(ctx, username, password)
	if err != nil {
		return fmt.Errorf("seeding superuser: %w", err)
	}
	if created {
		s.logger.Info().Str("username", username).Msg("Configured superuser created")
	}
	return nil
}
