package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tracker-server/internal/models"
	"tracker-server/internal/utils"
	apperrors "tracker-server/pkg/errors"
)

// ProfileRepository looks up principals by identifier or verified email.
type ProfileRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetOrCreateByEmail(ctx context.Context, email, name string) (*models.Profile, error)
}

type gormProfileRepository struct {
	base *gorm.DB
}

// NewProfileRepository creates a GORM-backed ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &gormProfileRepository{base: db}
}

func (r *gormProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := dbFromContext(ctx, r.base).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, "profile not found", "")
	}
	return &profile, nil
}

// GetOrCreateByEmail returns the profile for a verified email, creating it on
// first sight.
func (r *gormProfileRepository) GetOrCreateByEmail(ctx context.Context, email, name string) (*models.Profile, error) {
	profile, err := r.GetByEmail(ctx, email)
	if err == nil {
		return profile, nil
	}
	if !apperrors.HasCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	id, err := utils.GenerateUniqueID("U")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to generate profile id", err)
	}

	created := models.Profile{
		ID:    id,
		Email: strings.ToLower(email),
		Name:  name,
	}
	if err := dbFromContext(ctx, r.base).Create(&created).Error; err != nil {
		// A concurrent first request may have created the row already.
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByEmail(ctx, email)
		}
		return nil, translate(err, "", "profile already exists")
	}
	return &created, nil
}
