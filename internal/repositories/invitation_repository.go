package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"tracker-server/internal/models"
)

// InvitationRepository persists team invitations. Emails are compared
// case-insensitively everywhere.
type InvitationRepository interface {
	Insert(ctx context.Context, invitation *models.TeamInvitation) error
	GetByID(ctx context.Context, id string) (*models.TeamInvitation, error)
	HasPending(ctx context.Context, teamID, email string) (bool, error)
	ListPendingByTeam(ctx context.Context, teamID string) ([]models.TeamInvitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]models.TeamInvitation, error)
	MarkResolved(ctx context.Context, id string, status models.InvitationStatus, resolvedAt time.Time) error
	DeletePendingByTeam(ctx context.Context, teamID string) error
}

type gormInvitationRepository struct {
	base *gorm.DB
}

// NewInvitationRepository creates a GORM-backed InvitationRepository.
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &gormInvitationRepository{base: db}
}

func (r *gormInvitationRepository) Insert(ctx context.Context, invitation *models.TeamInvitation) error {
	if err := dbFromContext(ctx, r.base).Create(invitation).Error; err != nil {
		return translate(err, "", "a pending invitation already exists for this email")
	}
	return nil
}

func (r *gormInvitationRepository) GetByID(ctx context.Context, id string) (*models.TeamInvitation, error) {
	var invitation models.TeamInvitation
	if err := dbFromContext(ctx, r.base).First(&invitation, "id = ?", id).Error; err != nil {
		return nil, translate(err, "invitation not found", "")
	}
	return &invitation, nil
}

func (r *gormInvitationRepository) HasPending(ctx context.Context, teamID, email string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.base).
		Model(&models.TeamInvitation{}).
		Where("team_id = ? AND LOWER(email_invited) = ? AND status = ?",
			teamID, strings.ToLower(email), models.InvitationStatusPending).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "", "")
	}
	return count > 0, nil
}

func (r *gormInvitationRepository) ListPendingByTeam(ctx context.Context, teamID string) ([]models.TeamInvitation, error) {
	var invitations []models.TeamInvitation
	err := dbFromContext(ctx, r.base).
		Preload("Inviter").
		Where("team_id = ? AND status = ?", teamID, models.InvitationStatusPending).
		Order("created_at ASC").
		Find(&invitations).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return invitations, nil
}

func (r *gormInvitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]models.TeamInvitation, error) {
	var invitations []models.TeamInvitation
	err := dbFromContext(ctx, r.base).
		Preload("Team").
		Preload("Inviter").
		Where("LOWER(email_invited) = ? AND status = ?", strings.ToLower(email), models.InvitationStatusPending).
		Order("created_at ASC").
		Find(&invitations).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return invitations, nil
}

// MarkResolved flips a pending invitation to a terminal status. The status
// predicate makes the transition monotonic even under concurrent resolvers.
func (r *gormInvitationRepository) MarkResolved(ctx context.Context, id string, status models.InvitationStatus, resolvedAt time.Time) error {
	result := dbFromContext(ctx, r.base).
		Model(&models.TeamInvitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "invitation not found or already resolved", "")
	}
	return nil
}

// DeletePendingByTeam removes a team's unresolved invitations. Resolved ones
// stay as history until the team row itself goes. Zero affected rows is not
// an error.
func (r *gormInvitationRepository) DeletePendingByTeam(ctx context.Context, teamID string) error {
	err := dbFromContext(ctx, r.base).
		Where("team_id = ? AND status = ?", teamID, models.InvitationStatusPending).
		Delete(&models.TeamInvitation{}).Error
	if err != nil {
		return translate(err, "", "")
	}
	return nil
}
