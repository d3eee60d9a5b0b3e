package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tracker-server/internal/logics"
	"tracker-server/internal/middlewares"
	"tracker-server/internal/models"
	apperrors "tracker-server/pkg/errors"
)

// InvitationController handles invitation HTTP requests.
type InvitationController struct {
	BaseController
	invitationService *logics.InvitationService
	authzService      *logics.AuthzService
}

// NewInvitationController creates a new InvitationController instance
func NewInvitationController(
	invitationService *logics.InvitationService,
	authzService *logics.AuthzService,
	profileService *logics.ProfileService,
	activeTeamService *logics.ActiveTeamService,
	logger *zap.Logger,
) *InvitationController {
	return &InvitationController{
		BaseController:    NewBaseController(profileService, activeTeamService, logger),
		invitationService: invitationService,
		authzService:      authzService,
	}
}

// CreateInvitation invites an email address into a team.
// POST /teams/:id/invitations
// Request body: {"email": "someone@example.com", "role": "editor"}
func (ic *InvitationController) CreateInvitation(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID is required"})
	}

	var input struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if input.Role == "" {
		input.Role = string(models.RoleViewer)
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}

	if _, err := ic.authzService.RequireManageTeam(c.Request().Context(), teamID, profile.ID); err != nil {
		return ic.HandleError(c, err)
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return ic.HandleError(c, apperrors.NewAppError(apperrors.ErrInvalidArgument, err.Error(), err))
	}

	invitation, err := ic.invitationService.CreateInvitation(c.Request().Context(), teamID, profile, input.Email, role)
	if err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusCreated, invitation)
}

// ListTeamInvitations lists a team's pending invitations.
// GET /teams/:id/invitations
func (ic *InvitationController) ListTeamInvitations(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID is required"})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}

	if _, err := ic.authzService.RequireManageTeam(c.Request().Context(), teamID, profile.ID); err != nil {
		return ic.HandleError(c, err)
	}

	invitations, err := ic.invitationService.ListTeamInvitations(c.Request().Context(), teamID)
	if err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, invitations)
}

// ListMyInvitations lists pending invitations addressed to the caller.
// GET /invitations
func (ic *InvitationController) ListMyInvitations(c echo.Context) error {
	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}

	invitations, err := ic.invitationService.ListMyInvitations(c.Request().Context(), profile.Email)
	if err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, invitations)
}

// AcceptInvitation accepts an invitation and switches the session to the
// joined team.
// POST /invitations/:id/accept
func (ic *InvitationController) AcceptInvitation(c echo.Context) error {
	invitationID := c.Param("id")
	if invitationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invitation ID is required"})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}

	if err := ic.invitationService.AcceptInvitation(c.Request().Context(), invitationID, profile); err != nil {
		return ic.HandleError(c, err)
	}

	if invitation, err := ic.invitationService.GetInvitation(c.Request().Context(), invitationID); err == nil {
		middlewares.SetPreferredTeam(c, invitation.TeamID)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "invitation accepted"})
}

// DeclineInvitation declines an invitation.
// POST /invitations/:id/decline
func (ic *InvitationController) DeclineInvitation(c echo.Context) error {
	invitationID := c.Param("id")
	if invitationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invitation ID is required"})
	}

	profile, err := ic.GetProfileFromContext(c)
	if err != nil {
		return ic.HandleError(c, err)
	}

	if err := ic.invitationService.DeclineInvitation(c.Request().Context(), invitationID, profile); err != nil {
		return ic.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "invitation declined"})
}
