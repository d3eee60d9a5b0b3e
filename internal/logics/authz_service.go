package logics

import (
	"context"

	"go.uber.org/zap"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
	apperrors "tracker-server/pkg/errors"
)

// AuthzService answers what role a principal holds in a team and gates every
// operation on the capability predicates of that role. Roles are resolved
// from the store on every request; nothing is cached across requests.
type AuthzService struct {
	members repositories.MemberRepository
	logger  *zap.Logger
}

// NewAuthzService creates a new instance of AuthzService
func NewAuthzService(members repositories.MemberRepository, logger *zap.Logger) *AuthzService {
	return &AuthzService{
		members: members,
		logger:  logger,
	}
}

// RoleOf returns the role a principal holds in a team. The second return
// value is false when the principal is not a member, which is a normal state,
// not an error.
func (s *AuthzService) RoleOf(ctx context.Context, teamID, principalID string) (models.Role, bool, error) {
	member, err := s.members.Get(ctx, teamID, principalID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}

// RequireMember requires any membership. Non-members get "not found" so the
// team's existence is not leaked.
func (s *AuthzService) RequireMember(ctx context.Context, teamID, principalID string) (models.Role, error) {
	role, ok, err := s.RoleOf(ctx, teamID, principalID)
	if err != nil {
		return "", err
	}
	if !ok || !role.CanReadData() {
		return "", apperrors.NewAppError(apperrors.ErrNotFound, "team not found", nil)
	}
	return role, nil
}

// RequireMutateData requires a role allowed to write team-scoped records.
func (s *AuthzService) RequireMutateData(ctx context.Context, teamID, principalID string) (models.Role, error) {
	role, err := s.RequireMember(ctx, teamID, principalID)
	if err != nil {
		return "", err
	}
	if !role.CanMutateData() {
		return "", apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to modify this team's data", nil)
	}
	return role, nil
}

// RequireManageTeam requires a role allowed to change team settings,
// memberships, and invitations.
func (s *AuthzService) RequireManageTeam(ctx context.Context, teamID, principalID string) (models.Role, error) {
	role, err := s.RequireMember(ctx, teamID, principalID)
	if err != nil {
		return "", err
	}
	if !role.CanManageTeam() {
		return "", apperrors.NewAppError(apperrors.ErrUnauthorized, "you do not have permission to manage this team", nil)
	}
	return role, nil
}
