// Package service contains the business logic sitting between handlers and
// repositories.
package service

import (
	"context"
	"time"

	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/validation"
)

// ProfileInput is the upsert payload after the handler has parsed the body.
// Skills arrives either as a comma separated string or a list; the handler
// normalizes it before calling the service.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         models.SocialLinks
}

// ExperienceInput is a parsed work history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput is a parsed schooling entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService implements the profile workflows.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// GetCurrent returns the caller's own profile.
func (s *ProfileService) GetCurrent(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// GetByUserID returns another user's profile by their user ID.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// List returns all profiles with their users.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.GetAll(ctx)
}

// Upsert creates or replaces the caller's profile. Status and at least one
// skill are required; everything else is optional.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if fields := validation.ValidateProfile(in.Status, in.Skills); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	profile := &models.Profile{
		UserID:         userID,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         in.Skills,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social:         in.Social,
	}
	return s.profiles.Upsert(ctx, profile)
}

// AddExperience prepends a work history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	exp := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	return s.profiles.AddExperience(ctx, userID, exp)
}

// DeleteExperience removes one of the caller's work history entries.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	return s.profiles.DeleteExperience(ctx, userID, expID)
}

// AddEducation prepends a schooling entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	edu := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	return s.profiles.AddEducation(ctx, userID, edu)
}

// DeleteEducation removes one of the caller's schooling entries.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	return s.profiles.DeleteEducation(ctx, userID, eduID)
}

// DeleteAccount removes the caller's user record, profile, posts, likes and
// comments.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.users.Delete(ctx, userID)
}
