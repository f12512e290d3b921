package server

import (
	"encoding/json"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/service"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// skillsField accepts either a comma separated string or a JSON array so
// both payload shapes clients send are handled.
type skillsField []string

func (s *skillsField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = validation.ParseSkills(raw)
	return nil
}

type profileRequest struct {
	Company        string      `json:"company"`
	Website        string      `json:"website"`
	Location       string      `json:"location"`
	Status         string      `json:"status"`
	Skills         skillsField `json:"skills"`
	Bio            string      `json:"bio"`
	GithubUsername string      `json:"githubusername"`
	Youtube        string      `json:"youtube"`
	Twitter        string      `json:"twitter"`
	Facebook       string      `json:"facebook"`
	Linkedin       string      `json:"linkedin"`
	Instagram      string      `json:"instagram"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// parseDate accepts the date shapes clients send: date-only or RFC3339.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// handleGetMyProfile answers with the caller's own profile.
//
//	@Summary	Get current user's profile
//	@Tags		profile
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	models.Profile
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/profile/me [get]
func (s *Server) handleGetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profiles.GetCurrent(c.UserContext(), s.userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleUpsertProfile creates or updates the caller's profile.
//
//	@Summary	Create or update a profile
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		body	body		profileRequest	true	"profile payload"
//	@Success	200		{object}	models.Profile
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/profile [post]
func (s *Server) handleUpsertProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.Upsert(c.UserContext(), s.userID(c), service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleListProfiles answers with every profile, publicly readable.
//
//	@Summary	List all profiles
//	@Tags		profile
//	@Produce	json
//	@Success	200	{array}	models.Profile
//	@Router		/api/profile [get]
func (s *Server) handleListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profiles.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profiles)
}

// handleGetProfileByUser answers with a user's profile by their user ID.
//
//	@Summary	Get a profile by user ID
//	@Tags		profile
//	@Produce	json
//	@Param		userId	path		int	true	"user ID"
//	@Success	200		{object}	models.Profile
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/profile/user/{userId} [get]
func (s *Server) handleGetProfileByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	profile, err := s.profiles.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleAddExperience prepends a work history entry.
//
//	@Summary	Add profile experience
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		body	body		experienceRequest	true	"experience payload"
//	@Success	200		{object}	models.Profile
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/profile/experience [put]
func (s *Server) handleAddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	fields := validation.ValidateExperience(req.Title, req.Company, req.From)
	from, fromOK := parseDate(req.From)
	if req.From != "" && !fromOK {
		fields = append(fields, models.FieldError{Field: "from", Msg: "From date is invalid"})
	}
	if len(fields) > 0 {
		return models.RespondWithError(c, models.NewFieldValidationError(fields))
	}

	var to *time.Time
	if t, ok := parseDate(req.To); ok {
		to = &t
	}

	profile, err := s.profiles.AddExperience(c.UserContext(), s.userID(c), service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleDeleteExperience removes one work history entry by ID.
//
//	@Summary	Delete profile experience
//	@Tags		profile
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		int	true	"experience ID"
//	@Success	200	{object}	models.Profile
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/profile/experience/{id} [delete]
func (s *Server) handleDeleteExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	profile, err := s.profiles.DeleteExperience(c.UserContext(), s.userID(c), expID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleAddEducation prepends a schooling entry.
//
//	@Summary	Add profile education
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		body	body		educationRequest	true	"education payload"
//	@Success	200		{object}	models.Profile
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/profile/education [put]
func (s *Server) handleAddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	fields := validation.ValidateEducation(req.School, req.Degree, req.FieldOfStudy, req.From)
	from, fromOK := parseDate(req.From)
	if req.From != "" && !fromOK {
		fields = append(fields, models.FieldError{Field: "from", Msg: "From date is invalid"})
	}
	if len(fields) > 0 {
		return models.RespondWithError(c, models.NewFieldValidationError(fields))
	}

	var to *time.Time
	if t, ok := parseDate(req.To); ok {
		to = &t
	}

	profile, err := s.profiles.AddEducation(c.UserContext(), s.userID(c), service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleDeleteEducation removes one schooling entry by ID.
//
//	@Summary	Delete profile education
//	@Tags		profile
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		int	true	"education ID"
//	@Success	200	{object}	models.Profile
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/profile/education/{id} [delete]
func (s *Server) handleDeleteEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	profile, err := s.profiles.DeleteEducation(c.UserContext(), s.userID(c), eduID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// handleDeleteAccount removes the caller's account with everything attached.
//
//	@Summary	Delete account
//	@Tags		profile
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	map[string]string
//	@Router		/api/profile [delete]
func (s *Server) handleDeleteAccount(c *fiber.Ctx) error {
	if err := s.profiles.DeleteAccount(c.UserContext(), s.userID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// handleGithubRepos proxies the user's five most recent GitHub repositories.
//
//	@Summary	Get GitHub repos for a username
//	@Tags		profile
//	@Produce	json
//	@Param		username	path	string	true	"GitHub username"
//	@Success	200			{array}	service.GithubRepo
//	@Failure	404			{object}	models.ErrorResponse
//	@Failure	502			{object}	models.ErrorResponse
//	@Router		/api/profile/github/{username} [get]
func (s *Server) handleGithubRepos(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return models.RespondWithError(c, models.NewValidationError("Invalid username"))
	}
	repos, err := s.github.Repos(c.UserContext(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(repos)
}
