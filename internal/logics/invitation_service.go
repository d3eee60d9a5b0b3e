package logics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tracker-server/internal/models"
	"tracker-server/internal/repositories"
	"tracker-server/internal/utils"
	apperrors "tracker-server/pkg/errors"
)

// How long a recipient is shielded from repeat invitation mail for the same
// team after one is sent.
const invitationEmailThrottle = 24 * time.Hour

// InvitationService runs the invitation state machine: a pending invitation
// is created for an email address and is resolved exactly once, to accepted
// or declined. Resolved invitations never change again.
type InvitationService struct {
	invitations repositories.InvitationRepository
	members     repositories.MemberRepository
	profiles    repositories.ProfileRepository
	teams       repositories.TeamRepository
	tx          repositories.TxManager
	email       *utils.EmailService
	redis       *redis.Client
	senderEmail string
	appBaseURL  string
	logger      *zap.Logger
}

// NewInvitationService creates a new instance of InvitationService. email and
// redis may be nil, in which case invitation mail is skipped.
func NewInvitationService(
	invitations repositories.InvitationRepository,
	members repositories.MemberRepository,
	profiles repositories.ProfileRepository,
	teams repositories.TeamRepository,
	tx repositories.TxManager,
	email *utils.EmailService,
	redisClient *redis.Client,
	senderEmail string,
	appBaseURL string,
	logger *zap.Logger,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		members:     members,
		profiles:    profiles,
		teams:       teams,
		tx:          tx,
		email:       email,
		redis:       redisClient,
		senderEmail: senderEmail,
		appBaseURL:  appBaseURL,
		logger:      logger,
	}
}

// CreateInvitation issues a pending invitation for an email address. Only one
// pending invitation per (team, email) may exist; inviting an existing member
// or yourself is rejected.
func (s *InvitationService) CreateInvitation(ctx context.Context, teamID string, inviter *models.Profile, targetEmail string, role models.Role) (*models.TeamInvitation, error) {
	targetEmail = strings.ToLower(strings.TrimSpace(targetEmail))
	if targetEmail == "" || !strings.Contains(targetEmail, "@") {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "a valid email address is required", nil)
	}
	if !role.Valid() {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "unknown role: "+string(role), nil)
	}
	if strings.EqualFold(targetEmail, inviter.Email) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "you cannot invite yourself", nil)
	}

	existing, err := s.profiles.GetByEmail(ctx, targetEmail)
	if err == nil {
		if _, err := s.members.Get(ctx, teamID, existing.ID); err == nil {
			return nil, apperrors.NewAppError(apperrors.ErrConflict, "this user is already a member of the team", nil)
		} else if !apperrors.HasCode(err, apperrors.ErrNotFound) {
			return nil, err
		}
	} else if !apperrors.HasCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	pending, err := s.invitations.HasPending(ctx, teamID, targetEmail)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewAppError(apperrors.ErrConflict, "an invitation for this email is already pending", nil)
	}

	invitation := models.TeamInvitation{
		ID:           uuid.NewString(),
		TeamID:       teamID,
		EmailInvited: targetEmail,
		InvitedBy:    inviter.ID,
		Role:         role,
		Status:       models.InvitationStatusPending,
	}
	// The partial unique index catches a concurrent duplicate the HasPending
	// check above raced with.
	if err := s.invitations.Insert(ctx, &invitation); err != nil {
		return nil, err
	}

	s.notify(ctx, &invitation, inviter)
	return &invitation, nil
}

// notify sends the invitation email, throttled per (team, email). Failures
// are logged and swallowed; the invitation itself is already committed.
func (s *InvitationService) notify(ctx context.Context, invitation *models.TeamInvitation, inviter *models.Profile) {
	if s.email == nil {
		return
	}
	if s.redis != nil {
		key := fmt.Sprintf("invite_email:%s:%s", invitation.TeamID, invitation.EmailInvited)
		set, err := s.redis.SetNX(ctx, key, "1", invitationEmailThrottle).Result()
		if err != nil {
			s.logger.Warn("invitation email throttle check failed", zap.Error(err))
		} else if !set {
			s.logger.Info("invitation email throttled",
				zap.String("team_id", invitation.TeamID),
				zap.String("email", invitation.EmailInvited))
			return
		}
	}

	team, err := s.teams.GetByID(ctx, invitation.TeamID)
	if err != nil {
		s.logger.Warn("failed to load team for invitation email", zap.Error(err))
		return
	}
	inviteURL := fmt.Sprintf("%s/invitations/%s", strings.TrimRight(s.appBaseURL, "/"), invitation.ID)
	if err := s.email.SendTeamInvitationEmail(s.senderEmail, invitation.EmailInvited, team.Name, inviter.Name, inviteURL); err != nil {
		s.logger.Warn("failed to send invitation email",
			zap.String("invitation_id", invitation.ID),
			zap.Error(err))
	}
}

// AcceptInvitation resolves an invitation to accepted and enrolls the
// accepter with the invited role. Accepting an already-accepted invitation by
// the same principal is a no-op success; a declined one cannot be accepted.
func (s *InvitationService) AcceptInvitation(ctx context.Context, invitationID string, accepter *models.Profile) error {
	invitation, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(invitation.EmailInvited, accepter.Email) {
		return apperrors.NewAppError(apperrors.ErrUnauthorized, "this invitation was issued to a different email address", nil)
	}
	switch invitation.Status {
	case models.InvitationStatusAccepted:
		return nil
	case models.InvitationStatusDeclined:
		return apperrors.NewAppError(apperrors.ErrConflict, "this invitation has already been declined", nil)
	}

	if _, err := s.teams.GetByID(ctx, invitation.TeamID); err != nil {
		if apperrors.HasCode(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(apperrors.ErrNotFound, "this invitation is no longer valid", err)
		}
		return err
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		member := models.TeamMember{
			TeamID:   invitation.TeamID,
			MemberID: accepter.ID,
			Role:     invitation.Role,
		}
		if err := s.members.Insert(ctx, &member); err != nil {
			// Already a member, e.g. re-invited after joining some other way.
			// The invitation still gets resolved below.
			if !apperrors.HasCode(err, apperrors.ErrConflict) {
				return err
			}
		}
		return s.invitations.MarkResolved(ctx, invitation.ID, models.InvitationStatusAccepted, time.Now())
	})
}

// DeclineInvitation resolves an invitation to declined without enrolling
// anyone. Declining twice is a no-op success.
func (s *InvitationService) DeclineInvitation(ctx context.Context, invitationID string, decliner *models.Profile) error {
	invitation, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(invitation.EmailInvited, decliner.Email) {
		return apperrors.NewAppError(apperrors.ErrUnauthorized, "this invitation was issued to a different email address", nil)
	}
	switch invitation.Status {
	case models.InvitationStatusDeclined:
		return nil
	case models.InvitationStatusAccepted:
		return apperrors.NewAppError(apperrors.ErrConflict, "this invitation has already been accepted", nil)
	}
	return s.invitations.MarkResolved(ctx, invitationID, models.InvitationStatusDeclined, time.Now())
}

// GetInvitation returns an invitation by ID.
func (s *InvitationService) GetInvitation(ctx context.Context, id string) (*models.TeamInvitation, error) {
	return s.invitations.GetByID(ctx, id)
}

// ListTeamInvitations returns the pending invitations of a team.
func (s *InvitationService) ListTeamInvitations(ctx context.Context, teamID string) ([]models.TeamInvitation, error) {
	return s.invitations.ListPendingByTeam(ctx, teamID)
}

// ListMyInvitations returns the pending invitations addressed to an email.
func (s *InvitationService) ListMyInvitations(ctx context.Context, email string) ([]models.TeamInvitation, error) {
	return s.invitations.ListPendingByEmail(ctx, email)
}
