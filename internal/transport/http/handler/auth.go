package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"  binding:"required"`
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required"`
}

// Missing login fields are not a validation error: they fail the credential
// check like any other wrong pair.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authUsecase.Signup(c.Request.Context(), usecase.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user signed up", "user_id", user.ID)
	c.JSON(http.StatusCreated, envelope{
		Status: statusSuccess,
		Data:   gin.H{"user": toUserResponse(user)},
	})
}

// POST /api/auth/login
// Unknown email and wrong password both answer 401 with the same message.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, envelope{
		Status: statusSuccess,
		Data:   gin.H{"token": token},
	})
}
