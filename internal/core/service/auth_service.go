package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthService implements signup and confirmation-code token exchange.
type AuthService struct {
	users     ports.UserRepository
	codes     ports.CodeStore
	sender    ports.CodeSender
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codes ports.CodeStore,
	sender ports.CodeSender,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		codes:     codes,
		sender:    sender,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup registers a new account and dispatches a confirmation code.
//
// The duplicate path is deliberate two-step control flow: when creation fails
// because the exact (username, email) pair already exists, a fresh code is
// dispatched to that account *before* the error is returned, so existing
// users can re-request their code. A username or email collision with a
// different pairing gets the error with no dispatch.
func (s *AuthService) Signup(ctx context.Context, username, email string) (*ports.SignupResult, error) {
	if username == "me" || !usernamePattern.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}

	user := &domain.User{
		Username:  username,
		Email:     email,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	err := s.users.Create(ctx, user)
	if err == nil {
		if sendErr := s.issueAndSend(ctx, username, email); sendErr != nil {
			return nil, sendErr
		}
		return &ports.SignupResult{Username: username, Email: email}, nil
	}
	if !errors.Is(err, domain.ErrUserExists) {
		return nil, err
	}

	// Step two: creation failed, check for the exact existing pair.
	existing, findErr := s.users.FindByUsername(ctx, username)
	if findErr == nil && existing.Email == email {
		if sendErr := s.issueAndSend(ctx, username, email); sendErr != nil {
			return nil, sendErr
		}
	}
	return nil, domain.ErrUserExists
}

func (s *AuthService) issueAndSend(ctx context.Context, username, email string) error {
	code, err := s.codes.Issue(ctx, username)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, email, username, code); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("confirmation code dispatched")
	return nil
}

// ObtainToken exchanges a confirmation code for a signed JWT.
func (s *AuthService) ObtainToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if err := s.codes.Verify(ctx, username, code); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"username":  user.Username,
		"email":     user.Email,
		"role":      string(user.Role),
		"superuser": user.Superuser,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", username).Msg("access token issued")
	return signed, nil
}
