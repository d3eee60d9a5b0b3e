package logics

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"tracker-server/internal/models"
	apperrors "tracker-server/pkg/errors"
)

func newTagService(tags *MockTagRepository, items *MockItemRepository) *TagService {
	return NewTagService(tags, items, passthroughTxManager{}, zap.NewNop())
}

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "urgent", NormalizeTagName("  Urgent "))
	assert.Equal(t, NormalizeTagName("URGENT"), NormalizeTagName("urgent"))
	assert.Equal(t, "", NormalizeTagName("   "))

	// The in-memory form must match what LOWER() produces in the database,
	// including characters where lowercasing and case folding diverge.
	for _, name := range []string{"Straẞe", "ſold"} {
		assert.Equal(t, strings.ToLower(name), NormalizeTagName(name), "name %q", name)
	}
}

func TestTagService_Reconcile(t *testing.T) {
	t.Run("same set is a no-op", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{
			{ID: "G01URGENTAAAA", TeamID: "T01AAAAAAAAA", Name: "Urgent"},
			{ID: "G02REVIEWAAAA", TeamID: "T01AAAAAAAAA", Name: "Review"},
		}, nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI",
			[]string{"Urgent", "Review"})

		assert.NoError(t, err)
		mockItems.AssertNotCalled(t, "UnlinkTags", mock.Anything, mock.Anything, mock.Anything)
		mockItems.AssertNotCalled(t, "LinkTags", mock.Anything, mock.Anything, mock.Anything)
		mockTags.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("order, duplicates and case do not matter", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{
			{ID: "G01URGENTAAAA", Name: "Urgent"},
			{ID: "G02REVIEWAAAA", Name: "Review"},
		}, nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI",
			[]string{"review", "URGENT", "urgent", "  Review  "})

		assert.NoError(t, err)
		mockItems.AssertNotCalled(t, "UnlinkTags", mock.Anything, mock.Anything, mock.Anything)
		mockItems.AssertNotCalled(t, "LinkTags", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reuses an existing team tag and creates the missing one", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{}, nil)
		mockItems.On("UnlinkTags", mock.Anything, "IT01AAAAAAAAA", mock.Anything).Return(nil)
		// "urgent" exists in the team under a different spelling; "brand-new"
		// does not.
		mockTags.On("FindByNormalizedNames", mock.Anything, "T01AAAAAAAAA", []string{"urgent", "brand-new"}).
			Return([]models.Tag{{ID: "G01URGENTAAAA", TeamID: "T01AAAAAAAAA", Name: "URGENT"}}, nil)
		mockTags.On("Insert", mock.Anything, mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.TeamID == "T01AAAAAAAAA" &&
				tag.Name == "Brand-New" &&
				tag.CreatedBy == "U01ABCDEFGHI" &&
				tag.ID != "" && tag.Color != ""
		})).Return(nil)
		mockItems.On("LinkTags", mock.Anything, "IT01AAAAAAAAA", mock.MatchedBy(func(ids []string) bool {
			return len(ids) == 2 && ids[0] == "G01URGENTAAAA"
		})).Return(nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI",
			[]string{"urgent", "Brand-New"})

		assert.NoError(t, err)
		mockTags.AssertExpectations(t)
		mockItems.AssertExpectations(t)
	})

	t.Run("unlinks tags that fell out of the set without deleting them", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{
			{ID: "G01URGENTAAAA", Name: "Urgent"},
			{ID: "G02REVIEWAAAA", Name: "Review"},
		}, nil)
		mockItems.On("UnlinkTags", mock.Anything, "IT01AAAAAAAAA", []string{"G02REVIEWAAAA"}).Return(nil)
		mockItems.On("LinkTags", mock.Anything, "IT01AAAAAAAAA", mock.MatchedBy(func(ids []string) bool {
			return len(ids) == 0
		})).Return(nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI",
			[]string{"Urgent"})

		assert.NoError(t, err)
		mockTags.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		mockItems.AssertExpectations(t)
	})

	t.Run("empty desired set clears all links", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{
			{ID: "G01URGENTAAAA", Name: "Urgent"},
		}, nil)
		mockItems.On("UnlinkTags", mock.Anything, "IT01AAAAAAAAA", []string{"G01URGENTAAAA"}).Return(nil)
		mockItems.On("LinkTags", mock.Anything, "IT01AAAAAAAAA", mock.Anything).Return(nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI", nil)

		assert.NoError(t, err)
		mockItems.AssertExpectations(t)
	})

	t.Run("blank names are ignored", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{}, nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI",
			[]string{"", "   "})

		assert.NoError(t, err)
		mockTags.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("lost insert race reuses the winner's tag", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		mockItems := new(MockItemRepository)
		mockItems.On("ListLinkedTags", mock.Anything, "IT01AAAAAAAAA").Return([]models.Tag{}, nil)
		mockItems.On("UnlinkTags", mock.Anything, "IT01AAAAAAAAA", mock.Anything).Return(nil)
		// First lookup misses, insert loses the race, second lookup finds the
		// winner's row.
		mockTags.On("FindByNormalizedNames", mock.Anything, "T01AAAAAAAAA", []string{"urgent"}).
			Return([]models.Tag{}, nil).Once()
		mockTags.On("Insert", mock.Anything, mock.Anything).
			Return(apperrors.NewAppError(apperrors.ErrConflict, "a tag with this name already exists", nil)).Once()
		mockTags.On("FindByNormalizedNames", mock.Anything, "T01AAAAAAAAA", []string{"urgent"}).
			Return([]models.Tag{{ID: "G09WINNERAAAA", Name: "urgent"}}, nil).Once()
		mockItems.On("LinkTags", mock.Anything, "IT01AAAAAAAAA", []string{"G09WINNERAAAA"}).Return(nil)

		service := newTagService(mockTags, mockItems)
		err := service.Reconcile(context.Background(), "T01AAAAAAAAA", "IT01AAAAAAAAA", "U01ABCDEFGHI",
			[]string{"urgent"})

		assert.NoError(t, err)
		mockTags.AssertExpectations(t)
	})
}
