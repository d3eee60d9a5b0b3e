package repositories

import (
	"context"

	"gorm.io/gorm"

	"tracker-server/internal/models"
)

// TeamRepository persists teams.
type TeamRepository interface {
	Insert(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string, preloads ...string) (*models.Team, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type gormTeamRepository struct {
	base *gorm.DB
}

// NewTeamRepository creates a GORM-backed TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &gormTeamRepository{base: db}
}

func (r *gormTeamRepository) Insert(ctx context.Context, team *models.Team) error {
	if err := dbFromContext(ctx, r.base).Create(team).Error; err != nil {
		return translate(err, "", "a team with this name already exists")
	}
	return nil
}

func (r *gormTeamRepository) GetByID(ctx context.Context, id string, preloads ...string) (*models.Team, error) {
	query := dbFromContext(ctx, r.base)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var team models.Team
	if err := query.First(&team, "id = ?", id).Error; err != nil {
		return nil, translate(err, "team not found", "")
	}
	return &team, nil
}

func (r *gormTeamRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	err := dbFromContext(ctx, r.base).
		Model(&models.Team{}).
		Where("id = ?", id).
		Updates(updates).Error
	return translate(err, "team not found", "a team with this name already exists")
}

func (r *gormTeamRepository) Delete(ctx context.Context, id string) error {
	err := dbFromContext(ctx, r.base).Delete(&models.Team{}, "id = ?", id).Error
	return translate(err, "team not found", "")
}
