package logics

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
	"tracker-server/internal/utils"
	apperrors "tracker-server/pkg/errors"
)

var tagLowerer = cases.Lower(language.Und)

// NormalizeTagName canonicalizes a tag name for identity comparison:
// whitespace trimmed, then lower-cased. Lowercasing has to agree with the
// LOWER() the lookup queries run in Postgres, which rules out full case
// folding. The original spelling is what gets stored when a tag is first
// created.
func NormalizeTagName(name string) string {
	return tagLowerer.String(strings.TrimSpace(name))
}

// TagService keeps an item's tag links in sync with a desired set of names.
// Tags are team-scoped and deduplicated case-insensitively; reconciliation
// only ever creates tags that do not exist yet and only ever unlinks, never
// deletes, tags that fall out of the desired set.
type TagService struct {
	tags   repositories.TagRepository
	items  repositories.ItemRepository
	tx     repositories.TxManager
	logger *zap.Logger
}

// NewTagService creates a new instance of TagService
func NewTagService(tags repositories.TagRepository, items repositories.ItemRepository, tx repositories.TxManager, logger *zap.Logger) *TagService {
	return &TagService{
		tags:   tags,
		items:  items,
		tx:     tx,
		logger: logger,
	}
}

// Reconcile makes the item's linked tags exactly match desiredNames. Names
// are trimmed and compared case-insensitively; blanks and duplicates in the
// input are ignored. Existing team tags are reused under their stored
// spelling, missing ones are created with the caller's spelling. Reconciling
// the same set twice is a no-op.
func (s *TagService) Reconcile(ctx context.Context, teamID, itemID, actorID string, desiredNames []string) error {
	// normalized name -> first spelling seen
	desired := make(map[string]string)
	order := make([]string, 0, len(desiredNames))
	for _, raw := range desiredNames {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		norm := NormalizeTagName(trimmed)
		if _, seen := desired[norm]; !seen {
			desired[norm] = trimmed
			order = append(order, norm)
		}
	}

	current, err := s.items.ListLinkedTags(ctx, itemID)
	if err != nil {
		return err
	}
	currentByNorm := make(map[string]models.Tag, len(current))
	for _, tag := range current {
		currentByNorm[NormalizeTagName(tag.Name)] = tag
	}

	var unlinkIDs []string
	for norm, tag := range currentByNorm {
		if _, keep := desired[norm]; !keep {
			unlinkIDs = append(unlinkIDs, tag.ID)
		}
	}

	var missing []string
	for _, norm := range order {
		if _, linked := currentByNorm[norm]; !linked {
			missing = append(missing, norm)
		}
	}

	if len(unlinkIDs) == 0 && len(missing) == 0 {
		return nil
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.items.UnlinkTags(ctx, itemID, unlinkIDs); err != nil {
			return err
		}

		linkIDs := make([]string, 0, len(missing))
		if len(missing) > 0 {
			existing, err := s.tags.FindByNormalizedNames(ctx, teamID, missing)
			if err != nil {
				return err
			}
			existingByNorm := make(map[string]models.Tag, len(existing))
			for _, tag := range existing {
				existingByNorm[NormalizeTagName(tag.Name)] = tag
			}
			for _, norm := range missing {
				if tag, ok := existingByNorm[norm]; ok {
					linkIDs = append(linkIDs, tag.ID)
					continue
				}
				tag, err := s.createTag(ctx, teamID, actorID, desired[norm])
				if err != nil {
					return err
				}
				linkIDs = append(linkIDs, tag.ID)
			}
		}
		return s.items.LinkTags(ctx, itemID, linkIDs)
	})
}

// createTag inserts a tag with a fresh ID and color. A concurrent insert of
// the same name trips the unique index; the winner's row is reused.
func (s *TagService) createTag(ctx context.Context, teamID, actorID, name string) (*models.Tag, error) {
	id, err := utils.GenerateUniqueID("G")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to generate tag ID", err)
	}
	color, err := utils.UniqueIDSvc.GenerateRandomColor()
	if err != nil {
		color = "CCCCCC"
	}
	tag := models.Tag{
		ID:        id,
		TeamID:    teamID,
		Name:      name,
		Color:     color,
		CreatedBy: actorID,
	}
	if err := s.tags.Insert(ctx, &tag); err != nil {
		if apperrors.HasCode(err, apperrors.ErrConflict) {
			winners, ferr := s.tags.FindByNormalizedNames(ctx, teamID, []string{NormalizeTagName(name)})
			if ferr == nil && len(winners) > 0 {
				return &winners[0], nil
			}
		}
		return nil, err
	}
	return &tag, nil
}

// ListTags returns all tags of a team.
func (s *TagService) ListTags(ctx context.Context, teamID string) ([]models.Tag, error) {
	return s.tags.ListByTeam(ctx, teamID)
}

// DeleteTag removes a tag from the team; its item links cascade away.
func (s *TagService) DeleteTag(ctx context.Context, teamID, tagID string) error {
	return s.tags.Delete(ctx, teamID, tagID)
}
