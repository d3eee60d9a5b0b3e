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

// TeamController handles team and membership HTTP requests.
type TeamController struct {
	BaseController
	teamService  *logics.TeamService
	authzService *logics.AuthzService
}

// NewTeamController creates a new TeamController instance
func NewTeamController(
	teamService *logics.TeamService,
	authzService *logics.AuthzService,
	profileService *logics.ProfileService,
	activeTeamService *logics.ActiveTeamService,
	logger *zap.Logger,
) *TeamController {
	return &TeamController{
		BaseController: NewBaseController(profileService, activeTeamService, logger),
		teamService:    teamService,
		authzService:   authzService,
	}
}

// ListMyTeams lists the caller's teams with the role held in each.
// GET /teams
func (tc *TeamController) ListMyTeams(c echo.Context) error {
	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	memberships, err := tc.teamService.ListTeams(c.Request().Context(), profile.ID)
	if err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, memberships)
}

// CreateTeam creates a team with the caller as its admin.
// POST /teams
func (tc *TeamController) CreateTeam(c echo.Context) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	team, err := tc.teamService.CreateTeam(c.Request().Context(), profile.ID, input.Name, input.Description)
	if err != nil {
		return tc.HandleError(c, err)
	}

	// A freshly created team becomes the active one.
	middlewares.SetPreferredTeam(c, team.ID)
	return c.JSON(http.StatusCreated, team)
}

// GetActiveTeam resolves and returns the caller's active team.
// GET /teams/active
func (tc *TeamController) GetActiveTeam(c echo.Context) error {
	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	active, err := tc.ResolveActiveTeam(c, profile)
	if err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, active)
}

// SetActiveTeam records a team preference after checking the caller actually
// belongs to it.
// PUT /teams/active
func (tc *TeamController) SetActiveTeam(c echo.Context) error {
	var input struct {
		TeamID string `json:"team_id"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if input.TeamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team_id is required"})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	role, err := tc.authzService.RequireMember(c.Request().Context(), input.TeamID, profile.ID)
	if err != nil {
		return tc.HandleError(c, err)
	}

	middlewares.SetPreferredTeam(c, input.TeamID)
	return c.JSON(http.StatusOK, map[string]string{"team_id": input.TeamID, "role": string(role)})
}

// GetTeam returns team detail for members.
// GET /teams/:id
func (tc *TeamController) GetTeam(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID is required"})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	if _, err := tc.authzService.RequireMember(c.Request().Context(), teamID, profile.ID); err != nil {
		return tc.HandleError(c, err)
	}

	team, err := tc.teamService.GetTeam(c.Request().Context(), teamID)
	if err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, team)
}

// UpdateTeam updates team name/description.
// PUT /teams/:id
func (tc *TeamController) UpdateTeam(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID is required"})
	}

	var update models.TeamUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	if _, err := tc.authzService.RequireManageTeam(c.Request().Context(), teamID, profile.ID); err != nil {
		return tc.HandleError(c, err)
	}

	team, err := tc.teamService.UpdateTeam(c.Request().Context(), teamID, update)
	if err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, team)
}

// DeleteTeam deletes a team and all its memberships.
// DELETE /teams/:id
func (tc *TeamController) DeleteTeam(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID is required"})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	if _, err := tc.authzService.RequireManageTeam(c.Request().Context(), teamID, profile.ID); err != nil {
		return tc.HandleError(c, err)
	}

	if err := tc.teamService.DeleteTeam(c.Request().Context(), teamID); err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "team deleted"})
}

// ListMembers lists the member roster of a team.
// GET /teams/:id/members
func (tc *TeamController) ListMembers(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID is required"})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	if _, err := tc.authzService.RequireMember(c.Request().Context(), teamID, profile.ID); err != nil {
		return tc.HandleError(c, err)
	}

	members, err := tc.teamService.ListTeamMembers(c.Request().Context(), teamID)
	if err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// UpdateMemberRole changes a member's role.
// PUT /teams/:id/members/:member_id
// Request body: {"role": "editor"}
func (tc *TeamController) UpdateMemberRole(c echo.Context) error {
	teamID := c.Param("id")
	memberID := c.Param("member_id")
	if teamID == "" || memberID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID and member ID are required"})
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	if _, err := tc.authzService.RequireManageTeam(c.Request().Context(), teamID, profile.ID); err != nil {
		return tc.HandleError(c, err)
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return tc.HandleError(c, apperrors.NewAppError(apperrors.ErrInvalidArgument, err.Error(), err))
	}

	if err := tc.teamService.UpdateMemberRole(c.Request().Context(), teamID, memberID, role); err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "member role updated"})
}

// RemoveMember removes a member. Members may always remove themselves; admins
// may remove anyone, as long as the team keeps at least one admin.
// DELETE /teams/:id/members/:member_id
func (tc *TeamController) RemoveMember(c echo.Context) error {
	teamID := c.Param("id")
	memberID := c.Param("member_id")
	if teamID == "" || memberID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "team ID and member ID are required"})
	}

	profile, err := tc.GetProfileFromContext(c)
	if err != nil {
		return tc.HandleError(c, err)
	}

	if profile.ID != memberID {
		if _, err := tc.authzService.RequireManageTeam(c.Request().Context(), teamID, profile.ID); err != nil {
			return tc.HandleError(c, err)
		}
	}

	if err := tc.teamService.RemoveMember(c.Request().Context(), teamID, memberID); err != nil {
		return tc.HandleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "member removed"})
}
