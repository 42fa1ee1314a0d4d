package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/blog-api/internal/auth"
	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/email"
	"github.com/ErlanBelekov/blog-api/internal/metrics"
	"github.com/ErlanBelekov/blog-api/internal/repository"
)

type tokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(raw string) (*auth.Claims, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthUsecase struct {
	users  repository.UserRepository
	tokens tokenIssuer
	hasher passwordHasher
	mail   email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens tokenIssuer, hasher passwordHasher, mail email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		mail:   mail,
		logger: logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup stores a new user with a bcrypt hash of the password and sends a
// welcome email. A failed email is logged, not returned.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "failure").Inc()
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()

	if err := u.mail.Send(ctx, email.Welcome(user.Email, user.FirstName)); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed bearer token. Unknown
// email and wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
			return "", domain.ErrInvalidLogin
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
			return "", domain.ErrInvalidLogin
		}
		return "", err
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return token, nil
}

// Authenticate verifies a raw bearer token and resolves it to a stored user.
func (u *AuthUsecase) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := u.tokens.Verify(rawToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
