package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devlink/internal/cache"
	"devlink/internal/middleware"
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GithubRepo is the subset of the GitHub repository payload the API exposes.
type GithubRepo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Watchers    int    `json:"watchers_count"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
}

// GithubService proxies the public GitHub API for profile repo listings.
// BaseURL is swappable so tests can point it at a local server.
type GithubService struct {
	BaseURL string
	Token   string
}

func NewGithubService(baseURL, token string) *GithubService {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GithubService{BaseURL: baseURL, Token: token}
}

// Repos returns a user's five most recent public repositories. Results are
// cached per username; an unknown username answers not found, a transport
// failure answers bad gateway.
func (s *GithubService) Repos(ctx context.Context, username string) ([]GithubRepo, error) {
	var repos []GithubRepo
	err := cache.Aside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		return s.fetch(ctx, username, &repos)
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (s *GithubService) fetch(ctx context.Context, username string, repos *[]GithubRepo) error {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", s.BaseURL, username)

	agent := fiber.Get(url)
	agent.Timeout(10 * time.Second)
	agent.Set("User-Agent", "devlink-api")
	if s.Token != "" {
		agent.Set("Authorization", "token "+s.Token)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		middleware.Logger.ErrorContext(ctx, "github request failed",
			"username", username, "error", errs[0])
		return models.NewUpstreamError(errs[0])
	}
	if code != fiber.StatusOK {
		return models.NewNotFoundError("GitHub profile")
	}
	if err := json.Unmarshal(body, repos); err != nil {
		return models.NewUpstreamError(err)
	}
	return nil
}
