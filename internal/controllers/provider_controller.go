package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-server/internal/logics"
	apperrors "tracker-server/pkg/errors"
)

// ProviderController handles provider catalog HTTP requests in the caller's
// active team.
type ProviderController struct {
	BaseController
	providerService *logics.ProviderService
}

// NewProviderController creates a new ProviderController instance
func NewProviderController(
	providerService *logics.ProviderService,
	profileService *logics.ProfileService,
	activeTeamService *logics.ActiveTeamService,
	logger *zap.Logger,
) *ProviderController {
	return &ProviderController{
		BaseController:  NewBaseController(profileService, activeTeamService, logger),
		providerService: providerService,
	}
}

// ListProviders lists the active team's provider catalog.
// GET /providers
func (pc *ProviderController) ListProviders(c echo.Context) error {
	profile, err := pc.GetProfileFromContext(c)
	if err != nil {
		return pc.HandleError(c, err)
	}
	active, err := pc.ResolveActiveTeam(c, profile)
	if err != nil {
		return pc.HandleError(c, err)
	}

	providers, err := pc.providerService.ListProviders(c.Request().Context(), active.Team.ID)
	if err != nil {
		return pc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, providers)
}

// CreateProvider adds a provider to the catalog.
// POST /providers
func (pc *ProviderController) CreateProvider(c echo.Context) error {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := pc.GetProfileFromContext(c)
	if err != nil {
		return pc.HandleError(c, err)
	}
	active, err := pc.ResolveActiveTeam(c, profile)
	if err != nil {
		return pc.HandleError(c, err)
	}
	if !active.Role.CanMutateData() {
		return pc.HandleError(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil))
	}

	provider, err := pc.providerService.CreateProvider(c.Request().Context(), active.Team.ID, profile.ID, input.Name)
	if err != nil {
		return pc.HandleError(c, err)
	}
	return c.JSON(http.StatusCreated, provider)
}

// DeleteProvider removes a provider from the catalog.
// DELETE /providers/:id
func (pc *ProviderController) DeleteProvider(c echo.Context) error {
	providerID := c.Param("id")
	if providerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "provider ID is required"})
	}

	profile, err := pc.GetProfileFromContext(c)
	if err != nil {
		return pc.HandleError(c, err)
	}
	active, err := pc.ResolveActiveTeam(c, profile)
	if err != nil {
		return pc.HandleError(c, err)
	}
	if !active.Role.CanMutateData() {
		return pc.HandleError(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil))
	}

	if err := pc.providerService.DeleteProvider(c.Request().Context(), active.Team.ID, providerID); err != nil {
		return pc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "provider deleted"})
}
