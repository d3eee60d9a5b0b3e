package httpEngine

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tracker-server/configs"
	"tracker-server/internal/controllers"
	"tracker-server/internal/logics"
	"tracker-server/internal/middlewares"
	"tracker-server/internal/repositories"
	"tracker-server/internal/utils"
)

// RegisterRoutes registers all routes of the server.
func RegisterRoutes(e *echo.Echo) {
	// Basic health check endpoint (no JWT middleware)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, from Tracker Server!")
	})

	repos := repositories.New(repositories.DBS.Postgres)
	log := configs.Logger

	var emailService *utils.EmailService
	if configs.Configs.Email.SMTPHost != "" {
		emailService = utils.NewEmailService(
			configs.Configs.Email.SMTPHost,
			configs.Configs.Email.SMTPPort,
			configs.Configs.Email.Username,
			configs.Configs.Email.Password,
		)
	}

	// Service initialization
	profileService := logics.NewProfileService(repos.Profiles, log)
	authzService := logics.NewAuthzService(repos.Members, log)
	activeTeamService := logics.NewActiveTeamService(repos.Members, log)
	teamService := logics.NewTeamService(repos.Teams, repos.Members, repos.Invitations, repos.Items, repos.Tags, repos.Providers, repos.Tx, log)
	invitationService := logics.NewInvitationService(
		repos.Invitations, repos.Members, repos.Profiles, repos.Teams, repos.Tx,
		emailService, repositories.DBS.Redis,
		configs.Configs.Email.SenderEmail, configs.Configs.Service.BaseURL,
		log,
	)
	tagService := logics.NewTagService(repos.Tags, repos.Items, repos.Tx, log)
	providerService := logics.NewProviderService(repos.Providers, log)
	itemService := logics.NewItemService(repos.Items, providerService, tagService, repos.Tx, log)

	// Controller initialization with the services they need
	teamController := controllers.NewTeamController(teamService, authzService, profileService, activeTeamService, log)
	invitationController := controllers.NewInvitationController(invitationService, authzService, profileService, activeTeamService, log)
	itemController := controllers.NewItemController(itemService, authzService, profileService, activeTeamService, log)
	tagController := controllers.NewTagController(tagService, profileService, activeTeamService, log)
	providerController := controllers.NewProviderController(providerService, profileService, activeTeamService, log)

	api := e.Group("")
	api.Use(middlewares.JWTMiddleware(configs.Configs.Secrets.JWTSecret))

	// Team endpoints
	api.GET("/teams", teamController.ListMyTeams)
	api.POST("/teams", teamController.CreateTeam)
	api.GET("/teams/active", teamController.GetActiveTeam)
	api.PUT("/teams/active", teamController.SetActiveTeam)
	api.GET("/teams/:id", teamController.GetTeam)
	api.PUT("/teams/:id", teamController.UpdateTeam)
	api.DELETE("/teams/:id", teamController.DeleteTeam)

	// Membership endpoints
	api.GET("/teams/:id/members", teamController.ListMembers)
	api.PUT("/teams/:id/members/:member_id", teamController.UpdateMemberRole)
	api.DELETE("/teams/:id/members/:member_id", teamController.RemoveMember)

	// Invitation endpoints
	api.GET("/teams/:id/invitations", invitationController.ListTeamInvitations)
	api.POST("/teams/:id/invitations", invitationController.CreateInvitation)
	api.GET("/invitations", invitationController.ListMyInvitations)
	api.POST("/invitations/:id/accept", invitationController.AcceptInvitation)
	api.POST("/invitations/:id/decline", invitationController.DeclineInvitation)

	// Item endpoints (active team)
	api.GET("/items", itemController.ListItems)
	api.POST("/items", itemController.CreateItem)
	api.GET("/items/:id", itemController.GetItem)
	api.PUT("/items/:id", itemController.UpdateItem)
	api.DELETE("/items/:id", itemController.DeleteItem)

	// Tag endpoints (active team)
	api.GET("/tags", tagController.ListTags)
	api.DELETE("/tags/:id", tagController.DeleteTag)

	// Provider endpoints (active team)
	api.GET("/providers", providerController.ListProviders)
	api.POST("/providers", providerController.CreateProvider)
	api.DELETE("/providers/:id", providerController.DeleteProvider)
}
