package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository handles profile persistence, including the embedded
// experience and education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetAll(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error)
	DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error)
	DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// preloaded returns a query with the user and the newest-first entry lists
// attached, the shape every profile read responds with.
func (r *profileRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		return r.preloaded(ctx).Where("user_id = ?", userID).First(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey(), &profiles, cache.ProfileListTTL, func() error {
		return r.preloaded(ctx).Order("created_at DESC, id DESC").Find(&profiles).Error
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert creates the profile on first write and replaces the scalar fields on
// subsequent writes, keyed by user ID. Concurrent updates are serialized with
// a version check; the loser retries against the fresh row.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		var existing models.Profile
		err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
				if isUniqueConstraintError(err) {
					continue
				}
				return nil, err
			}
			cache.InvalidateProfile(ctx, profile.UserID)
			return r.GetByUserID(ctx, profile.UserID)
		}
		if err != nil {
			return nil, err
		}

		res := r.db.WithContext(ctx).Model(&models.Profile{}).
			Where("id = ? AND version = ?", existing.ID, existing.Version).
			Updates(map[string]any{
				"company":         profile.Company,
				"website":         profile.Website,
				"location":        profile.Location,
				"status":          profile.Status,
				"skills":          profile.Skills,
				"bio":             profile.Bio,
				"github_username": profile.GithubUsername,
				"social":          profile.Social,
				"version":         existing.Version + 1,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race, reload and retry
			continue
		}
		cache.InvalidateProfile(ctx, profile.UserID)
		return r.GetByUserID(ctx, profile.UserID)
	}
	return nil, models.NewConflictError("Profile was modified concurrently")
}

// Delete removes the profile and its entries. Missing profiles are fine, the
// account deletion flow calls this unconditionally.
func (r *profileRepository) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&profile).Error; err != nil {
			return err
		}
		cache.InvalidateProfile(ctx, userID)
		return nil
	})
}

func (r *profileRepository) requireProfile(ctx context.Context, tx *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := tx.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Profile")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}

// DeleteExperience removes one entry by ID. The entry must belong to the
// caller's profile; an unknown or foreign ID answers not found.
func (r *profileRepository) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Experience entry")
	}
	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := r.requireProfile(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Education entry")
	}
	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}
