package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talenthub/internal/domain/user"
	"talenthub/internal/infrastructure/mail"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users   user.Repository
	mailer  mail.Mailer
	baseURL string
	logger  *log.Logger

	now func() time.Time
}

func NewService(users user.Repository, mailer mail.Mailer, baseURL string, logger *log.Logger) *Service {
	return &Service{
		users:   users,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = user.RoleCandidate
	}
	if !user.ValidRole(role) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	// Mail delivery never fails registration; the user can request a new
	// verification link later.
	if err := s.sendActionMail(ctx, u, user.TokenPurposeVerifyEmail); err != nil && s.logger != nil {
		s.logger.Printf("auth: verification mail failed | user=%s err=%v", u.ID, err)
	}

	return sanitizeUser(u), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	t, err := s.users.ConsumeAuthToken(ctx, token, user.TokenPurposeVerifyEmail)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidToken
		}
		return ErrInternal
	}
	if err := s.users.MarkEmailVerified(ctx, t.UserID); err != nil {
		return ErrInternal
	}
	return nil
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint cannot be used to probe which emails are registered.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return ErrInternal
	}

	if err := s.sendActionMail(ctx, u, user.TokenPurposeResetPassword); err != nil && s.logger != nil {
		s.logger.Printf("auth: reset mail failed | user=%s err=%v", u.ID, err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !isValidPassword(newPassword) {
		return ErrInvalidInput
	}

	t, err := s.users.ConsumeAuthToken(ctx, token, user.TokenPurposeResetPassword)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidToken
		}
		return ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}
	if err := s.users.UpdatePassword(ctx, t.UserID, string(hash)); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) sendActionMail(ctx context.Context, u user.User, purpose string) error {
	if s.mailer == nil {
		return nil
	}

	t := user.AuthToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: s.now().Add(time.Hour),
	}
	if err := s.users.CreateAuthToken(ctx, t); err != nil {
		return err
	}

	switch purpose {
	case user.TokenPurposeVerifyEmail:
		return s.mailer.SendVerification(ctx, u.Email, s.actionURL("/verify-email", t.Token))
	case user.TokenPurposeResetPassword:
		return s.mailer.SendPasswordReset(ctx, u.Email, s.actionURL("/reset-password", t.Token))
	default:
		return fmt.Errorf("unknown token purpose %q", purpose)
	}
}

func (s *Service) actionURL(path, token string) string {
	return s.baseURL + path + "?token=" + url.QueryEscape(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
