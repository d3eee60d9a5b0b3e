package logics

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
	"tracker-server/internal/utils"
	apperrors "tracker-server/pkg/errors"
)

// ItemInput carries the writable fields of a new item.
type ItemInput struct {
	Name         string
	Notes        string
	ProviderName string
	Position     decimal.Decimal
	Metadata     datatypes.JSON
	TagNames     []string
}

// ItemService owns item lifecycle. Provider names are resolved against the
// team catalog on every write, and tag links are reconciled after the item
// row itself is committed; a tag failure after a successful write surfaces as
// a partial failure with the written item attached.
type ItemService struct {
	items     repositories.ItemRepository
	providers *ProviderService
	tags      *TagService
	tx        repositories.TxManager
	logger    *zap.Logger
}

// NewItemService creates a new instance of ItemService
func NewItemService(items repositories.ItemRepository, providers *ProviderService, tags *TagService, tx repositories.TxManager, logger *zap.Logger) *ItemService {
	return &ItemService{
		items:     items,
		providers: providers,
		tags:      tags,
		tx:        tx,
		logger:    logger,
	}
}

// CreateItem creates an item in the team. When tag reconciliation fails after
// the item row was written, the created item is returned together with a
// partial-failure error.
func (s *ItemService) CreateItem(ctx context.Context, teamID, actorID string, input ItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "item name is required", nil)
	}

	ref, err := s.providers.Resolve(ctx, teamID, input.ProviderName)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateUniqueID("IT")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to generate item ID", err)
	}
	item := models.Item{
		ID:           id,
		TeamID:       teamID,
		Name:         name,
		Notes:        input.Notes,
		ProviderID:   ref.LinkedID,
		ProviderName: ref.ManualName,
		Position:     input.Position,
		Metadata:     input.Metadata,
		CreatedBy:    actorID,
	}
	if err := s.items.Insert(ctx, &item); err != nil {
		return nil, err
	}

	if len(input.TagNames) > 0 {
		if err := s.tags.Reconcile(ctx, teamID, item.ID, actorID, input.TagNames); err != nil {
			s.logger.Warn("item created but tag sync failed",
				zap.String("item_id", item.ID),
				zap.Error(err))
			return &item, apperrors.NewAppError(apperrors.ErrPartialFailure, "item created but its tags could not be updated", err)
		}
	}
	return s.items.GetByID(ctx, teamID, item.ID)
}

// UpdateItem applies a partial update. tagNames nil means leave tag links
// untouched; an empty slice clears them. A tag failure after the field update
// succeeded surfaces as a partial failure with the updated item attached.
func (s *ItemService) UpdateItem(ctx context.Context, teamID, actorID, itemID string, update models.ItemUpdate, tagNames []string) (*models.Item, error) {
	values := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "item name is required", nil)
		}
		values["name"] = name
	}
	if update.Notes != nil {
		values["notes"] = *update.Notes
	}
	if update.ProviderName != nil {
		ref, err := s.providers.Resolve(ctx, teamID, *update.ProviderName)
		if err != nil {
			return nil, err
		}
		values["provider_id"] = ref.LinkedID
		values["provider_name"] = ref.ManualName
	}
	if update.Position != nil {
		values["position"] = *update.Position
	}
	if update.Metadata != nil {
		values["metadata"] = *update.Metadata
	}

	if len(values) > 0 {
		if err := s.items.Update(ctx, teamID, itemID, values); err != nil {
			return nil, err
		}
	} else if _, err := s.items.GetByID(ctx, teamID, itemID); err != nil {
		return nil, err
	}

	if tagNames != nil {
		if err := s.tags.Reconcile(ctx, teamID, itemID, actorID, tagNames); err != nil {
			s.logger.Warn("item updated but tag sync failed",
				zap.String("item_id", itemID),
				zap.Error(err))
			item, gerr := s.items.GetByID(ctx, teamID, itemID)
			if gerr != nil {
				item = nil
			}
			return item, apperrors.NewAppError(apperrors.ErrPartialFailure, "item updated but its tags could not be updated", err)
		}
	}
	return s.items.GetByID(ctx, teamID, itemID)
}

// GetItem returns an item with its tags and provider loaded.
func (s *ItemService) GetItem(ctx context.Context, teamID, itemID string) (*models.Item, error) {
	return s.items.GetByID(ctx, teamID, itemID)
}

// ListItems returns the team's items ordered by position.
func (s *ItemService) ListItems(ctx context.Context, teamID string) ([]models.Item, error) {
	return s.items.ListByTeam(ctx, teamID)
}

// DeleteItem removes an item together with its tag links. Items are
// soft-deleted, so the link rows have to be cleared explicitly.
func (s *ItemService) DeleteItem(ctx context.Context, teamID, itemID string) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.items.Delete(ctx, teamID, itemID); err != nil {
			return err
		}
		linked, err := s.items.ListLinkedTags(ctx, itemID)
		if err != nil {
			return err
		}
		if len(linked) == 0 {
			return nil
		}
		tagIDs := make([]string, 0, len(linked))
		for _, tag := range linked {
			tagIDs = append(tagIDs, tag.ID)
		}
		return s.items.UnlinkTags(ctx, itemID, tagIDs)
	})
}
