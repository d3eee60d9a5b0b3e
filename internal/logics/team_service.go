package logics

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
	"tracker-server/internal/utils"
	apperrors "tracker-server/pkg/errors"
)

// TeamService owns team lifecycle and membership administration.
type TeamService struct {
	teams       repositories.TeamRepository
	members     repositories.MemberRepository
	invitations repositories.InvitationRepository
	items       repositories.ItemRepository
	tags        repositories.TagRepository
	providers   repositories.ProviderRepository
	tx          repositories.TxManager
	logger      *zap.Logger
}

// NewTeamService creates a new instance of TeamService
func NewTeamService(
	teams repositories.TeamRepository,
	members repositories.MemberRepository,
	invitations repositories.InvitationRepository,
	items repositories.ItemRepository,
	tags repositories.TagRepository,
	providers repositories.ProviderRepository,
	tx repositories.TxManager,
	logger *zap.Logger,
) *TeamService {
	return &TeamService{
		teams:       teams,
		members:     members,
		invitations: invitations,
		items:       items,
		tags:        tags,
		providers:   providers,
		tx:          tx,
		logger:      logger,
	}
}

// CreateTeam creates a team and enrolls the creator as its admin in one
// transaction. Either both rows exist afterwards or neither does.
func (s *TeamService) CreateTeam(ctx context.Context, creatorID, name, description string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "team name is required", nil)
	}

	id, err := utils.GenerateUniqueID("T")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to generate team ID", err)
	}

	team := models.Team{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     creatorID,
	}
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.teams.Insert(ctx, &team); err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID:   team.ID,
			MemberID: creatorID,
			Role:     models.RoleAdmin,
		}
		return s.members.Insert(ctx, &member)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID),
		zap.String("owner_id", creatorID))
	return &team, nil
}

// GetTeam returns a team with its owner and members loaded.
func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	return s.teams.GetByID(ctx, teamID, "Owner", "Memberships", "Memberships.Profile")
}

// UpdateTeam applies a partial update to the team's own fields.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID string, update models.TeamUpdate) (*models.Team, error) {
	values := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "team name is required", nil)
		}
		values["name"] = name
	}
	if update.Description != nil {
		values["description"] = strings.TrimSpace(*update.Description)
	}
	if len(values) > 0 {
		if err := s.teams.Update(ctx, teamID, values); err != nil {
			return nil, err
		}
	}
	return s.teams.GetByID(ctx, teamID, "Owner")
}

// DeleteTeam removes a team together with everything scoped under it:
// memberships, pending invitations, items and their tag links, tags, and
// providers, all in one transaction.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.members.DeleteByTeam(ctx, teamID); err != nil {
			return err
		}
		if err := s.invitations.DeletePendingByTeam(ctx, teamID); err != nil {
			return err
		}
		// Deleting the tags hard-deletes every link row of the team; items
		// and providers are soft-deleted afterwards.
		if err := s.tags.DeleteByTeam(ctx, teamID); err != nil {
			return err
		}
		if err := s.items.DeleteByTeam(ctx, teamID); err != nil {
			return err
		}
		if err := s.providers.DeleteByTeam(ctx, teamID); err != nil {
			return err
		}
		return s.teams.Delete(ctx, teamID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("team deleted", zap.String("team_id", teamID))
	return nil
}

// ListTeams returns every membership of a principal with the team loaded,
// oldest first.
func (s *TeamService) ListTeams(ctx context.Context, principalID string) ([]models.TeamMember, error) {
	memberships, err := s.members.ListByMember(ctx, principalID)
	if err != nil {
		return nil, err
	}
	alive := make([]models.TeamMember, 0, len(memberships))
	for _, m := range memberships {
		if m.Team != nil {
			alive = append(alive, m)
		}
	}
	return alive, nil
}

// ListTeamMembers returns the member roster of a team, oldest first.
func (s *TeamService) ListTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	return s.members.ListByTeam(ctx, teamID)
}

// RemoveMember removes a member from a team. Removing the last admin is
// rejected so the team never ends up unmanageable.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, targetID string) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		member, err := s.members.Get(ctx, teamID, targetID)
		if err != nil {
			return err
		}
		if member.Role == models.RoleAdmin {
			admins, err := s.members.CountAdmins(ctx, teamID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return apperrors.NewAppError(apperrors.ErrConflict, "a team must retain at least one admin", nil)
			}
		}
		return s.members.Delete(ctx, teamID, targetID)
	})
}

// UpdateMemberRole changes a member's role. Demoting the last admin is
// rejected.
func (s *TeamService) UpdateMemberRole(ctx context.Context, teamID, targetID string, newRole models.Role) error {
	if !newRole.Valid() {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "unknown role: "+string(newRole), nil)
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		member, err := s.members.Get(ctx, teamID, targetID)
		if err != nil {
			return err
		}
		if member.Role == newRole {
			return nil
		}
		if member.Role == models.RoleAdmin {
			admins, err := s.members.CountAdmins(ctx, teamID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return apperrors.NewAppError(apperrors.ErrConflict, "a team must retain at least one admin", nil)
			}
		}
		return s.members.UpdateRole(ctx, teamID, targetID, newRole)
	})
}
