package logics

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
	"tracker-server/internal/utils"
	apperrors "tracker-server/pkg/errors"
)

// ProviderService manages a team's provider catalog and resolves free-text
// provider names against it.
type ProviderService struct {
	providers repositories.ProviderRepository
	logger    *zap.Logger
}

// NewProviderService creates a new instance of ProviderService
func NewProviderService(providers repositories.ProviderRepository, logger *zap.Logger) *ProviderService {
	return &ProviderService{
		providers: providers,
		logger:    logger,
	}
}

// Resolve matches a free-text provider name against the team's catalog. An
// exact, case-sensitive match links the catalog entry; anything else is kept
// verbatim as a manual name. An empty name resolves to no provider at all.
func (s *ProviderService) Resolve(ctx context.Context, teamID, manualName string) (models.ProviderRef, error) {
	trimmed := strings.TrimSpace(manualName)
	if trimmed == "" {
		return models.ProviderRef{}, nil
	}
	provider, err := s.providers.FindByName(ctx, teamID, trimmed)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrNotFound) {
			return models.ProviderRef{ManualName: trimmed}, nil
		}
		return models.ProviderRef{}, err
	}
	return models.ProviderRef{LinkedID: &provider.ID}, nil
}

// CreateProvider adds a provider to the team's catalog. Names are unique per
// team.
func (s *ProviderService) CreateProvider(ctx context.Context, teamID, actorID, name string) (*models.Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "provider name is required", nil)
	}
	id, err := utils.GenerateUniqueID("PR")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to generate provider ID", err)
	}
	provider := models.Provider{
		ID:        id,
		TeamID:    teamID,
		Name:      name,
		CreatedBy: actorID,
	}
	if err := s.providers.Insert(ctx, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// ListProviders returns all providers of a team.
func (s *ProviderService) ListProviders(ctx context.Context, teamID string) ([]models.Provider, error) {
	return s.providers.ListByTeam(ctx, teamID)
}

// DeleteProvider removes a provider from the catalog. Items that linked it
// keep working; their provider reference just dangles into nothing and reads
// resolve it as absent.
func (s *ProviderService) DeleteProvider(ctx context.Context, teamID, providerID string) error {
	return s.providers.Delete(ctx, teamID, providerID)
}
