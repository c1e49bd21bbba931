package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/config"
	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/events"
	"github.com/couriersync/courier-backoffice/internal/repository"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

// LoginStatus classifies the outcome of a login attempt.
type LoginStatus int

const (
	LoginUnauthorized LoginStatus = iota
	LoginMFARequired
	LoginSuccess
)

// LoginResult is the outcome of a login or MFA verification.
type LoginResult struct {
	Status    LoginStatus
	Token     string
	ExpiresAt time.Time
	Cedula    string
	RoleID    int
}

// LogoutResult confirms a logout. No server-side state changes: the token
// stays valid until its natural expiry.
type LogoutResult struct {
	Cedula string
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Cedula     string
	Username   string
	FullName   string
	Email      string
	Password   string
	RoleID     int
	MFAEnabled bool
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	mfa        *MFAService
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenService
	MFA        *MFAService
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		mfa:        deps.MFA,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Authenticate verifies the submitted credentials and claimed role against the
// stored identity. Every mismatch collapses to false: the caller learns
// nothing about which check failed. The error return carries only backing
// store failures.
func (s *AuthService) Authenticate(ctx context.Context, username, password string, roleID int) (bool, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return false, nil
	}
	if user.RoleID != roleID {
		return false, nil
	}
	return true, nil
}

// Login orchestrates authentication. With MFA enabled it issues a challenge
// and returns no token; otherwise it mints the session token.
func (s *AuthService) Login(ctx context.Context, username, password string, roleID int) (*LoginResult, error) {
	ok, err := s.Authenticate(ctx, username, password, roleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &LoginResult{Status: LoginUnauthorized}, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user.MFAEnabled {
		if s.mfa != nil {
			if _, err := s.mfa.IssueChallenge(ctx, user.Cedula); err != nil {
				return nil, err
			}
		}
		s.publish(ctx, events.EventLoginMFAChallenged, user.Cedula, events.LoginSucceededPayload{
			Username: user.Username,
			RoleID:   user.RoleID,
		})
		return &LoginResult{Status: LoginMFARequired, Cedula: user.Cedula}, nil
	}

	token, expiresAt, err := s.tokens.Issue(user.Cedula, user.Username, user.RoleID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded, user.Cedula, events.LoginSucceededPayload{
		Username: user.Username,
		RoleID:   user.RoleID,
	})
	return &LoginResult{
		Status:    LoginSuccess,
		Token:     token,
		ExpiresAt: expiresAt,
		Cedula:    user.Cedula,
		RoleID:    user.RoleID,
	}, nil
}

// Register creates a new identity after checking username and cedula uniqueness.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("usuario ya registrado", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByCedula(ctx, input.Cedula); err == nil {
		return nil, apperrors.NewConflict("cédula ya registrada", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Cedula:       input.Cedula,
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		RoleID:       input.RoleID,
		MFAEnabled:   input.MFAEnabled,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.Cedula, events.UserRegisteredPayload{
		Username: user.Username,
		RoleID:   user.RoleID,
	})
	return user, nil
}

// Logout requires a well-formed bearer header with a currently-valid token.
// Tokens are not revoked server-side: a second logout with the same unexpired
// token also succeeds.
func (s *AuthService) Logout(ctx context.Context, authHeader string) (*LogoutResult, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, apperrors.NewUnauthorized("Token de autorización requerido")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	cedula, err := s.tokens.ExtractCedula(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Token inválido")
	}
	if !s.tokens.Validate(token, cedula) {
		return nil, apperrors.NewUnauthorized("Token inválido")
	}

	s.publish(ctx, events.EventLogout, cedula, nil)
	return &LogoutResult{Cedula: cedula}, nil
}

// FindByCedula loads the identity record behind the subject key.
func (s *AuthService) FindByCedula(ctx context.Context, cedula string) (*domain.User, error) {
	user, err := s.users.GetByCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("usuario", nil)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, cedula string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		ActorCedula: cedula,
		Timestamp:   time.Now(),
		Payload:     payload,
	})
}
