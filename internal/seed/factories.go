package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL", "HTML", "CSS",
	"React", "Vue", "Node.js", "Docker", "Kubernetes", "PostgreSQL", "Redis",
	"GraphQL", "gRPC", "AWS", "Terraform", "Linux",
}

// fakeUser builds a user with a deterministic per-run password hash so seeded
// accounts can all log in with the same credential.
func fakeUser(passwordHash string) *models.User {
	name := gofakeit.Name()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + fmt.Sprintf("%d@example.com", gofakeit.Number(1, 9999))
	return &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Avatar:   models.GravatarURL(email),
	}
}

func fakeProfile(userID uint) *models.Profile {
	n := rand.Intn(5) + 2
	skills := make([]string, 0, n)
	for _, i := range rand.Perm(len(skillPool))[:n] {
		skills = append(skills, skillPool[i])
	}
	return &models.Profile{
		UserID:         userID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       gofakeit.City(),
		Status:         statuses[rand.Intn(len(statuses))],
		Skills:         skills,
		Bio:            gofakeit.Sentence(12),
		GithubUsername: gofakeit.Username(),
		Social: models.SocialLinks{
			Twitter:  "https://twitter.com/" + gofakeit.Username(),
			Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
		},
	}
}

func fakeExperience() models.Experience {
	from := gofakeit.DateRange(time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))
	current := rand.Intn(3) == 0
	exp := models.Experience{
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Current:     current,
		Description: gofakeit.Sentence(10),
	}
	if !current {
		to := gofakeit.DateRange(from, time.Now())
		exp.To = &to
	}
	return exp
}

func fakeEducation() models.Education {
	from := gofakeit.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-4, 0, 0))
	to := from.AddDate(4, 0, 0)
	return models.Education{
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
	}
}

func fakePost(user *models.User) *models.Post {
	return &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Sentence(rand.Intn(20) + 5),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}

func fakeComment(postID uint, user *models.User) *models.Comment {
	return &models.Comment{
		PostID: postID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(rand.Intn(12) + 3),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}
