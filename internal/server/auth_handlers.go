package server

import (
	"strconv"
	"time"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// handleRegister creates a new account and answers with a signed JWT.
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		registerRequest	true	"registration payload"
//	@Success	201		{object}	tokenResponse
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	409		{object}	models.ErrorResponse
//	@Router		/api/users [post]
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if fields := validation.ValidateRegistration(req.Name, req.Email, req.Password); len(fields) > 0 {
		return models.RespondWithError(c, models.NewFieldValidationError(fields))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Avatar:   models.GravatarURL(req.Email),
	}
	if err := s.users.Create(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(tokenResponse{Token: token})
}

// handleLogin verifies credentials and answers with a signed JWT. Unknown
// email and wrong password produce the identical response.
//
//	@Summary	Authenticate a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"login payload"
//	@Success	200		{object}	tokenResponse
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/auth [post]
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if fields := validation.ValidateLogin(req.Email, req.Password); len(fields) > 0 {
		return models.RespondWithError(c, models.NewFieldValidationError(fields))
	}

	user, err := s.users.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if user == nil {
		return models.RespondWithError(c, models.NewInvalidCredentialsError())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, models.NewInvalidCredentialsError())
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(tokenResponse{Token: token})
}

// handleGetCurrentUser answers with the authenticated user, password omitted.
//
//	@Summary	Get the authenticated user
//	@Tags		auth
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	models.User
//	@Failure	401	{object}	models.ErrorResponse
//	@Router		/api/auth [get]
func (s *Server) handleGetCurrentUser(c *fiber.Ctx) error {
	user, err := s.users.GetByID(c.UserContext(), s.userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "devlink-api",
		"aud": "devlink-clients",
		"exp": now.Add(time.Duration(s.cfg.JWTExpirySeconds) * time.Second).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
