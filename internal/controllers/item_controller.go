package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tracker-server/internal/logics"
	"tracker-server/internal/models"
	apperrors "tracker-server/pkg/errors"
)

// ItemController handles item HTTP requests. All item routes operate in the
// caller's active team, resolved per request.
type ItemController struct {
	BaseController
	itemService  *logics.ItemService
	authzService *logics.AuthzService
}

// NewItemController creates a new ItemController instance
func NewItemController(
	itemService *logics.ItemService,
	authzService *logics.AuthzService,
	profileService *logics.ProfileService,
	activeTeamService *logics.ActiveTeamService,
	logger *zap.Logger,
) *ItemController {
	return &ItemController{
		BaseController: NewBaseController(profileService, activeTeamService, logger),
		itemService:    itemService,
		authzService:   authzService,
	}
}

// ListItems lists the active team's items.
// GET /items
func (ic *ItemController) ListItems(c echo.Context) error {
	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}
	active, err := ic.ResolveActiveTeam(c, profile)
	if err != nil {
		return ic.HandleError(c, err)
	}

	items, err := ic.itemService.ListItems(c.Request().Context(), active.Team.ID)
	if err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem returns one item of the active team.
// GET /items/:id
func (ic *ItemController) GetItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item ID is required"})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}
	active, err := ic.ResolveActiveTeam(c, profile)
	if err != nil {
		return ic.HandleError(c, err)
	}

	item, err := ic.itemService.GetItem(c.Request().Context(), active.Team.ID, itemID)
	if err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem creates an item in the active team. Tag names and a free-text
// provider name may ride along; a tag failure after the item was written
// comes back as 207 with the item attached.
// POST /items
func (ic *ItemController) CreateItem(c echo.Context) error {
	var input struct {
		Name         string           `json:"name"`
		Notes        string           `json:"notes"`
		ProviderName string           `json:"provider_name"`
		Position     *decimal.Decimal `json:"position"`
		Metadata     datatypes.JSON   `json:"metadata"`
		TagNames     []string         `json:"tag_names"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}
	active, err := ic.ResolveActiveTeam(c, profile)
	if err != nil {
		return ic.HandleError(c, err)
	}
	if !active.Role.CanMutateData() {
		return ic.HandleError(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil))
	}

	position := decimal.Zero
	if input.Position != nil {
		position = *input.Position
	}
	item, err := ic.itemService.CreateItem(c.Request().Context(), active.Team.ID, profile.ID, logics.ItemInput{
		Name:         input.Name,
		Notes:        input.Notes,
		ProviderName: input.ProviderName,
		Position:     position,
		Metadata:     input.Metadata,
		TagNames:     input.TagNames,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrPartialFailure) && item != nil {
			return c.JSON(http.StatusMultiStatus, map[string]interface{}{
				"item":  item,
				"error": err.Error(),
			})
		}
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem partially updates an item. Omitting tag_names leaves links
// untouched; sending an empty list clears them.
// PUT /items/:id
func (ic *ItemController) UpdateItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item ID is required"})
	}

	var input struct {
		models.ItemUpdate
		TagNames []string `json:"tag_names"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}
	active, err := ic.ResolveActiveTeam(c, profile)
	if err != nil {
		return ic.HandleError(c, err)
	}
	if !active.Role.CanMutateData() {
		return ic.HandleError(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil))
	}

	item, err := ic.itemService.UpdateItem(c.Request().Context(), active.Team.ID, profile.ID, itemID, input.ItemUpdate, input.TagNames)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrPartialFailure) && item != nil {
			return c.JSON(http.StatusMultiStatus, map[string]interface{}{
				"item":  item,
				"error": err.Error(),
			})
		}
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem deletes an item of the active team.
// DELETE /items/:id
func (ic *ItemController) DeleteItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item ID is required"})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}
	active, err := ic.ResolveActiveTeam(c, profile)
	if err != nil {
		return ic.HandleError(c, err)
	}
	if !active.Role.CanMutateData() {
		return ic.HandleError(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil))
	}

	if err := ic.itemService.DeleteItem(c.Request().Context(), active.Team.ID, itemID); err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted"})
}
