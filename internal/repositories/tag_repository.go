package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tracker-server/internal/models"
)

// TagRepository persists team-scoped tags. Name matching is case-insensitive
// against the lower-cased stored name.
type TagRepository interface {
	Insert(ctx context.Context, tag *models.Tag) error
	ListByTeam(ctx context.Context, teamID string) ([]models.Tag, error)
	FindByNormalizedNames(ctx context.Context, teamID string, names []string) ([]models.Tag, error)
	Delete(ctx context.Context, teamID, id string) error
	DeleteByTeam(ctx context.Context, teamID string) error
}

type gormTagRepository struct {
	base *gorm.DB
}

// NewTagRepository creates a GORM-backed TagRepository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &gormTagRepository{base: db}
}

func (r *gormTagRepository) Insert(ctx context.Context, tag *models.Tag) error {
	if err := dbFromContext(ctx, r.base).Create(tag).Error; err != nil {
		return translate(err, "", "a tag with this name already exists")
	}
	return nil
}

func (r *gormTagRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return tags, nil
}

// FindByNormalizedNames returns the team's tags whose lower-cased name appears
// in names. Callers pass already-normalized names.
func (r *gormTagRepository) FindByNormalizedNames(ctx context.Context, teamID string, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(name))
	}

	var tags []models.Tag
	err := dbFromContext(ctx, r.base).
		Where("team_id = ? AND LOWER(name) IN ?", teamID, lowered).
		Find(&tags).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return tags, nil
}

// Delete removes a tag row. Link rows go with it via the foreign key cascade.
func (r *gormTagRepository) Delete(ctx context.Context, teamID, id string) error {
	result := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.Tag{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "tag not found", "")
	}
	return nil
}

// DeleteByTeam removes every tag of a team, taking the team's link rows with
// them via the foreign key cascade. Zero affected rows is not an error.
func (r *gormTagRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	err := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.Tag{}).Error
	if err != nil {
		return translate(err, "", "")
	}
	return nil
}
