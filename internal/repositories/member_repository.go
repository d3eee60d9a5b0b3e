package repositories

import (
	"context"

	"gorm.io/gorm"

	"tracker-server/internal/models"
)

// MemberRepository persists team memberships. The (team, member) pair is
// immutable; only the role column is ever updated.
type MemberRepository interface {
	Get(ctx context.Context, teamID, memberID string) (*models.TeamMember, error)
	Insert(ctx context.Context, member *models.TeamMember) error
	UpdateRole(ctx context.Context, teamID, memberID string, role models.Role) error
	Delete(ctx context.Context, teamID, memberID string) error
	DeleteByTeam(ctx context.Context, teamID string) error
	ListByTeam(ctx context.Context, teamID string) ([]models.TeamMember, error)
	ListByMember(ctx context.Context, memberID string) ([]models.TeamMember, error)
	CountAdmins(ctx context.Context, teamID string) (int64, error)
}

type gormMemberRepository struct {
	base *gorm.DB
}

// NewMemberRepository creates a GORM-backed MemberRepository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &gormMemberRepository{base: db}
}

func (r *gormMemberRepository) Get(ctx context.Context, teamID, memberID string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := dbFromContext(ctx, r.base).
		Where("team_id = ? AND member_id = ?", teamID, memberID).
		First(&member).Error
	if err != nil {
		return nil, translate(err, "membership not found", "")
	}
	return &member, nil
}

func (r *gormMemberRepository) Insert(ctx context.Context, member *models.TeamMember) error {
	if err := dbFromContext(ctx, r.base).Create(member).Error; err != nil {
		return translate(err, "", "already a member of this team")
	}
	return nil
}

func (r *gormMemberRepository) UpdateRole(ctx context.Context, teamID, memberID string, role models.Role) error {
	result := dbFromContext(ctx, r.base).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND member_id = ?", teamID, memberID).
		Update("role", role)
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "membership not found", "")
	}
	return nil
}

func (r *gormMemberRepository) Delete(ctx context.Context, teamID, memberID string) error {
	result := dbFromContext(ctx, r.base).
		Where("team_id = ? AND member_id = ?", teamID, memberID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return translate(result.Error, "", "")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "membership not found", "")
	}
	return nil
}

// DeleteByTeam removes every membership of a team. Used when the team itself
// is being deleted, so zero affected rows is not an error.
func (r *gormMemberRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	err := dbFromContext(ctx, r.base).
		Where("team_id = ?", teamID).
		Delete(&models.TeamMember{}).Error
	if err != nil {
		return translate(err, "", "")
	}
	return nil
}

func (r *gormMemberRepository) ListByTeam(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := dbFromContext(ctx, r.base).
		Preload("Profile").
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return members, nil
}

// ListByMember returns all memberships of a principal with teams preloaded,
// oldest membership first. The resolver relies on this ordering for its
// deterministic fallback.
func (r *gormMemberRepository) ListByMember(ctx context.Context, memberID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := dbFromContext(ctx, r.base).
		Preload("Team").
		Where("member_id = ?", memberID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return members, nil
}

func (r *gormMemberRepository) CountAdmins(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.base).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND role = ?", teamID, models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "", "")
	}
	return count, nil
}
