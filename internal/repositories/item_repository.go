package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracker-server/internal/models"
)

// ItemRepository persists items and their tag links.
type ItemRepository interface {
	Insert(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, teamID, id string) (*models.Item, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Item, error)
	Update(ctx context.Context, teamID, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, teamID, id string) error
	DeleteByTeam(ctx context.Context, teamID string) error

	ListLinkedTags(ctx context.Context, itemID string) ([]models.Tag, error)
	LinkTags(ctx context.Context, itemID string, tagIDs []string) error
	UnlinkTags(ctx context.Context, itemID string, tagIDs []string) error
}

type gormItemRepository struct {
	base *gorm.DB
}

// NewItemRepository creates a GORM-backed ItemRepository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{base: db}
}

func (r *gormItemRepository) Insert(ctx context.Context, item *models.Item) error {
	if err := dbFromContext(ctx, r.base).Create(item).Error; err != nil {
		return translate(err, "", "item already exists")
	}
	return nil
}

func (r *gormItemRepository) GetByID(ctx context.Context, teamID, id string) (*models.Item, error) {
	var item models.Item
	err := dbFromContext(ctx, r.base).
		Preload("Tags").
		Preload("Provider").
		Where("team_id = ?", teamID).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "item not found", "")
	}
	return &item, nil
}

func (r *gormItemRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Item, error) {
	var items []models.Item
	err := dbFromContext(ctx, r.base).
		Preload("Tags").
		Preload("Provider").
		Where("team_id = ?", teamID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return items, nil
}

func (r *gormItemRepository) Update(ctx context.Context, teamID, id string, updates map[string]interface{}) error {
	result := dbFromContext(ctx, r.base).
		Model(&models.Item{}).
		Where("team_id = ? AND id = ?", teamID, id).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "item not found", "")
	}
	return nil
}

func (r *gormItemRepository) Delete(ctx context.Context, teamID, id string) error {
	result := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "item not found", "")
	}
	return nil
}

// DeleteByTeam removes every item of a team. Used when the team itself is
// being deleted, so zero affected rows is not an error.
func (r *gormItemRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	err := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.Item{}).Error
	if err != nil {
		return translate(err, "", "")
	}
	return nil
}

func (r *gormItemRepository) ListLinkedTags(ctx context.Context, itemID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := dbFromContext(ctx, r.base).
		Joins("JOIN item_tags ON item_tags.tag_id = tags.id").
		Where("item_tags.item_id = ?", itemID).
		Find(&tags).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return tags, nil
}

// LinkTags inserts link rows for the given tags. Conflicting rows are left in
// place, so racing reconciliations cannot produce duplicates.
func (r *gormItemRepository) LinkTags(ctx context.Context, itemID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]models.ItemTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, models.ItemTag{ItemID: itemID, TagID: tagID})
	}
	err := dbFromContext(ctx, r.base).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
	return translate(err, "", "")
}

func (r *gormItemRepository) UnlinkTags(ctx context.Context, itemID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	err := dbFromContext(ctx, r.base).
		Where("item_id = ? AND tag_id IN ?", itemID, tagIDs).
		Delete(&models.ItemTag{}).Error
	return translate(err, "", "")
}
