package logics

import (
	"context"

	"go.uber.org/zap"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
)

// ActiveTeamService resolves which team a request operates on. A stale
// preference (team deleted, membership revoked) falls back to the oldest
// surviving membership instead of failing the request.
type ActiveTeamService struct {
	members repositories.MemberRepository
	logger  *zap.Logger
}

// NewActiveTeamService creates a new instance of ActiveTeamService
func NewActiveTeamService(members repositories.MemberRepository, logger *zap.Logger) *ActiveTeamService {
	return &ActiveTeamService{
		members: members,
		logger:  logger,
	}
}

// ResolveActiveTeam picks the team a principal is acting in. preferredTeamID
// may be empty. The second return value reports that the preference was stale
// or missing and the caller should persist the returned team as the new
// preference.
func (s *ActiveTeamService) ResolveActiveTeam(ctx context.Context, principalID, preferredTeamID string) (*models.ActiveTeam, bool, error) {
	memberships, err := s.members.ListByMember(ctx, principalID)
	if err != nil {
		return nil, false, err
	}

	// Memberships whose team row was soft-deleted come back without the
	// association loaded and are as stale as a revoked membership.
	alive := make([]models.TeamMember, 0, len(memberships))
	for _, m := range memberships {
		if m.Team != nil {
			alive = append(alive, m)
		}
	}
	if len(alive) == 0 {
		return nil, false, nil
	}

	if preferredTeamID != "" {
		for _, m := range alive {
			if m.TeamID == preferredTeamID {
				return &models.ActiveTeam{Team: *m.Team, Role: m.Role}, false, nil
			}
		}
		s.logger.Info("stale team preference, falling back to oldest membership",
			zap.String("member_id", principalID),
			zap.String("preferred_team_id", preferredTeamID))
	}

	oldest := alive[0]
	return &models.ActiveTeam{Team: *oldest.Team, Role: oldest.Role}, true, nil
}
