package repositories

import (
	"context"

	"gorm.io/gorm"

	"tracker-server/internal/models"
)

// ProviderRepository persists team-scoped provider records. Unlike tags,
// provider names are matched exactly, case included.
type ProviderRepository interface {
	Insert(ctx context.Context, provider *models.Provider) error
	ListByTeam(ctx context.Context, teamID string) ([]models.Provider, error)
	FindByName(ctx context.Context, teamID, name string) (*models.Provider, error)
	Delete(ctx context.Context, teamID, id string) error
	DeleteByTeam(ctx context.Context, teamID string) error
}

type gormProviderRepository struct {
	base *gorm.DB
}

// NewProviderRepository creates a GORM-backed ProviderRepository.
func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &gormProviderRepository{base: db}
}

func (r *gormProviderRepository) Insert(ctx context.Context, provider *models.Provider) error {
	if err := dbFromContext(ctx, r.base).Create(provider).Error; err != nil {
		return translate(err, "", "a provider with this name already exists")
	}
	return nil
}

func (r *gormProviderRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Provider, error) {
	var providers []models.Provider
	err := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&providers).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return providers, nil
}

func (r *gormProviderRepository) FindByName(ctx context.Context, teamID, name string) (*models.Provider, error) {
	var provider models.Provider
	err := dbFromContext(ctx, r.base).
		Where("team_id = ? AND name = ?", teamID, name).
		First(&provider).Error
	if err != nil {
		return nil, translate(err, "provider not found", "")
	}
	return &provider, nil
}

func (r *gormProviderRepository) Delete(ctx context.Context, teamID, id string) error {
	result := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.Provider{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "provider not found", "")
	}
	return nil
}

// DeleteByTeam removes every provider of a team. Used when the team itself is
// being deleted, so zero affected rows is not an error.
func (r *gormProviderRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	err := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.Provider{}).Error
	if err != nil {
		return translate(err, "", "")
	}
	return nil
}
