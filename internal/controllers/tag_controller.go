package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-server/internal/logics"
	apperrors "tracker-server/pkg/errors"
)

// TagController handles tag HTTP requests in the caller's active team.
type TagController struct {
	BaseController
	tagService *logics.TagService
}

// NewTagController creates a new TagController instance
func NewTagController(
	tagService *logics.TagService,
	profileService *logics.ProfileService,
	activeTeamService *logics.ActiveTeamService,
	logger *zap.Logger,
) *TagController {
	return &TagController{
		BaseController: NewBaseController(profileService, activeTeamService, logger),
		tagService:     tagService,
	}
}

// ListTags lists the active team's tags.
// GET /tags
func (tc *TagController) ListTags(c echo.Context) error {
	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}
	active, err := tc.ResolveActiveTeam(c, profile)
	if err != nil {
		return tc.HandleError(c, err)
	}

	tags, err := tc.tagService.ListTags(c.Request().Context(), active.Team.ID)
	if err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

// DeleteTag deletes a tag; links on items cascade away.
// DELETE /tags/:id
func (tc *TagController) DeleteTag(c echo.Context) error {
	tagID := c.Param("id")
	if tagID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "tag ID is required"})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}
	active, err := tc.ResolveActiveTeam(c, profile)
	if err != nil {
		return tc.HandleError(c, err)
	}
	if !active.Role.CanMutateData() {
		return tc.HandleError(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil))
	}

	if err := tc.tagService.DeleteTag(c.Request().Context(), active.Team.ID, tagID); err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tag deleted"})
}
