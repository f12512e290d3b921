// Package seed provides database seeding utilities for development and demos.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"devlink/internal/models"
	"devlink/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	Password    string
}

// Seeder populates the database with fake users, profiles and posts.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll wipes every seeded table, children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds users with profiles, then a feed of posts with likes and
// comments spread across them.
func (s *Seeder) Run(opts Options) error {
	if opts.Password == "" {
		opts.Password = "password123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := fakeUser(string(hash))
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)

		// Roughly 80% of users get a profile
		if rand.Intn(5) != 0 {
			profile := fakeProfile(user.ID)
			if err := s.db.Create(profile).Error; err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
			for j := 0; j < rand.Intn(3)+1; j++ {
				exp := fakeExperience()
				exp.ProfileID = profile.ID
				if err := s.db.Create(&exp).Error; err != nil {
					return err
				}
			}
			for j := 0; j < rand.Intn(2)+1; j++ {
				edu := fakeEducation()
				edu.ProfileID = profile.ID
				if err := s.db.Create(&edu).Error; err != nil {
					return err
				}
			}
		}
	}
	log.Printf("Created %d users", len(users))

	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := fakePost(author)
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		for _, idx := range rand.Perm(len(users))[:rand.Intn(min(len(users), 8))] {
			like := models.Like{PostID: post.ID, UserID: users[idx].ID}
			if err := s.db.Create(&like).Error; err != nil {
				return err
			}
		}
		for j := 0; j < rand.Intn(4); j++ {
			commenter := users[rand.Intn(len(users))]
			if err := s.db.Create(fakeComment(post.ID, commenter)).Error; err != nil {
				return err
			}
		}
	}
	log.Printf("Created %d posts", opts.NumPosts)
	return nil
}

// fixtureFile is the YAML shape for hand-curated demo accounts.
type fixtureFile struct {
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Status   string `yaml:"status"`
		Skills   string `yaml:"skills"`
		Bio      string `yaml:"bio"`
	} `yaml:"users"`
}

// LoadFixtures seeds deterministic accounts from a YAML file, used for demo
// environments where known logins matter.
func (s *Seeder) LoadFixtures(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixtures: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse fixtures: %w", err)
	}

	for _, u := range f.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Name:     u.Name,
			Email:    u.Email,
			Password: string(hash),
			Avatar:   models.GravatarURL(u.Email),
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create fixture user %s: %w", u.Email, err)
		}
		if u.Status != "" {
			profile := fakeProfile(user.ID)
			profile.Status = u.Status
			profile.Bio = u.Bio
			if u.Skills != "" {
				profile.Skills = validation.ParseSkills(u.Skills)
			}
			if err := s.db.Create(profile).Error; err != nil {
				return err
			}
		}
	}
	log.Printf("Loaded %d fixture users from %s", len(f.Users), path)
	return nil
}
