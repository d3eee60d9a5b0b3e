package logics

import (
	"context"

	"go.uber.org/zap"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
)

// ProfileService loads and provisions principal profiles.
type ProfileService struct {
	profiles repositories.ProfileRepository
	logger   *zap.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profiles repositories.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

// GetOrCreateProfile returns the profile for an authenticated email,
// provisioning one on first sight.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, email, name string) (*models.Profile, error) {
	return s.profiles.GetOrCreateByEmail(ctx, email, name)
}
