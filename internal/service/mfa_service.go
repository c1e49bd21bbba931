package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/config"
	"github.com/couriersync/courier-backoffice/internal/events"
	"github.com/couriersync/courier-backoffice/internal/repository"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

// MFAService issues and verifies short-lived multi-factor challenge codes.
// Codes live in Redis under the subject key and are consumed on the first
// verification attempt, right or wrong.
type MFAService struct {
	client     *redis.Client
	users      repository.UserRepository
	tokens     *auth.TokenService
	dispatcher events.Dispatcher
	ttl        time.Duration
	logger     *zap.Logger
}

// NewMFAService builds the service.
func NewMFAService(client *redis.Client, users repository.UserRepository, tokens *auth.TokenService, dispatcher events.Dispatcher, cfg config.MFAConfig, logger *zap.Logger) *MFAService {
	return &MFAService{
		client:     client,
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		ttl:        cfg.ChallengeTTL(),
		logger:     logger,
	}
}

// IssueChallenge stores a fresh 6-digit code for the subject. Delivery is an
// external concern; the code is only logged at debug level.
func (s *MFAService) IssueChallenge(ctx context.Context, cedula string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, challengeKey(cedula), code, s.ttl).Err(); err != nil {
		return "", err
	}

	s.logger.Debug("mfa challenge issued",
		zap.String("cedula", cedula),
		zap.String("code", code))
	return code, nil
}

// Verify consumes the stored challenge and mints the session token when the
// submitted code matches. Expired, missing or wrong codes all collapse to a
// single unauthorized result.
func (s *MFAService) Verify(ctx context.Context, cedula, code string) (*LoginResult, error) {
	stored, err := s.client.GetDel(ctx, challengeKey(cedula)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewUnauthorized("Código MFA inválido o expirado")
	}
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, apperrors.NewUnauthorized("Código MFA inválido o expirado")
	}

	user, err := s.users.GetByCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Código MFA inválido o expirado")
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.Cedula, user.Username, user.RoleID)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:          uuid.NewString(),
			Type:        events.EventLoginSucceeded,
			ActorCedula: user.Cedula,
			Timestamp:   time.Now(),
			Payload: events.LoginSucceededPayload{
				Username: user.Username,
				RoleID:   user.RoleID,
				ViaMFA:   true,
			},
		})
	}

	return &LoginResult{
		Status:    LoginSuccess,
		Token:     token,
		ExpiresAt: expiresAt,
		Cedula:    user.Cedula,
		RoleID:    user.RoleID,
	}, nil
}

func challengeKey(cedula string) string {
	return "mfa:challenge:" + cedula
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
