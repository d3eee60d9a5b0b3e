package controllers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-server/internal/logics"
	"tracker-server/internal/middlewares"
	"tracker-server/internal/models"
	apperrors "tracker-server/pkg/errors"
)

// BaseController provides functionality shared by all controllers: resolving
// the caller's profile, resolving the active team, and translating service
// errors into HTTP responses.
type BaseController struct {
	ProfileService    *logics.ProfileService
	ActiveTeamService *logics.ActiveTeamService
	Logger            *zap.Logger
}

// NewBaseController creates a new BaseController instance
func NewBaseController(profileService *logics.ProfileService, activeTeamService *logics.ActiveTeamService, logger *zap.Logger) BaseController {
	return BaseController{
		ProfileService:    profileService,
		ActiveTeamService: activeTeamService,
		Logger:            logger,
	}
}

// GetProfileFromContext loads or provisions the profile for the
// authenticated email on the request.
func (bc *BaseController) GetProfileFromContext(c echo.Context) (*models.Profile, error) {
	email, err := middlewares.GetEmailFromContext(c)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrUnauthenticated, "authentication required", err)
	}

	profile, err := bc.ProfileService.GetOrCreateProfile(c.Request().Context(), email, middlewares.GetNameFromContext(c))
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ResolveActiveTeam picks the team this request acts in, from the session
// preference when it is still valid or the oldest membership otherwise. A
// fallback is written back to the session so the next request starts from it.
func (bc *BaseController) ResolveActiveTeam(c echo.Context, profile *models.Profile) (*models.ActiveTeam, error) {
	preferred := middlewares.GetPreferredTeam(c)
	active, fellBack, err := bc.ActiveTeamService.ResolveActiveTeam(c.Request().Context(), profile.ID, preferred)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "you are not a member of any team yet", nil)
	}
	if fellBack {
		middlewares.SetPreferredTeam(c, active.Team.ID)
	}
	return active, nil
}

// HandleError logs a service error and writes the HTTP response its code
// maps to.
func (bc *BaseController) HandleError(c echo.Context, err error) error {
	apperrors.LogError(bc.Logger, err, "request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()))
	return apperrors.ToHTTPError(err)
}
