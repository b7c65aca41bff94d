package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aryanarora07/studybuddy-new/internal/domain"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM-based profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Upsert creates or replaces the profile row for its user.
func (r *GormProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	model := domain.ProfileToModel(profile)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"major", "subjects", "availability", "location", "bio",
			"study_preference", "profile_visibility", "updated_at",
		}),
	}).Create(model)
	if result.Error != nil {
		return result.Error
	}

	profile.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByUserID retrieves the profile for a user.
func (r *GormProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var model domain.ProfileModel
	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// ListVisible returns all profiles marked visible, excluding the caller's.
func (r *GormProfileRepository) ListVisible(ctx context.Context, excludeUserID string) ([]*domain.Profile, error) {
	var models []domain.ProfileModel
	result := r.db.WithContext(ctx).
		Where("profile_visibility = ?", true).
		Where("user_id <> ?", excludeUserID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	profiles := make([]*domain.Profile, len(models))
	for i := range models {
		profiles[i] = models[i].ToDomain()
	}
	return profiles, nil
}

// SetPictureKey records the storage key of the user's profile picture,
// creating an otherwise empty profile row if none exists yet.
func (r *GormProfileRepository) SetPictureKey(ctx context.Context, userID, key string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.ProfileModel{}).
			Where("user_id = ?", userID).
			Update("picture_key", key)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		return tx.Create(&domain.ProfileModel{
			UserID:            userID,
			StudyPreference:   domain.StudyPreferenceBoth,
			ProfileVisibility: true,
			PictureKey:        key,
		}).Error
	})
}
