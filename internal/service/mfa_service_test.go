package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/config"
	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/service"
)

func newMFAService(t *testing.T, users ...*domain.User) (*service.MFAService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokens := auth.NewTokenService("test-secret", 1)
	svc := service.NewMFAService(client, newStubUserRepo(users...), tokens, nil,
		config.MFAConfig{ChallengeTTLMinutes: 5}, zap.NewNop())
	return svc, mr
}

func mfaUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		Cedula:       "1017234567",
		Username:     "mgarcia",
		PasswordHash: mustHash(t, "correcthorse"),
		RoleID:       2,
		MFAEnabled:   true,
	}
}

func TestMFAChallengeRoundTrip(t *testing.T) {
	svc, _ := newMFAService(t, mfaUser(t))
	ctx := context.Background()

	code, err := svc.IssueChallenge(ctx, "1017234567")
	require.NoError(t, err)
	require.Len(t, code, 6)

	result, err := svc.Verify(ctx, "1017234567", code)
	require.NoError(t, err)
	assert.Equal(t, service.LoginSuccess, result.Status)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 2, result.RoleID)
}

func TestMFAWrongCodeConsumesChallenge(t *testing.T) {
	svc, _ := newMFAService(t, mfaUser(t))
	ctx := context.Background()

	code, err := svc.IssueChallenge(ctx, "1017234567")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = svc.Verify(ctx, "1017234567", wrong)
	assertDomainCode(t, err, "UNAUTHORIZED")

	// one-shot: the right code no longer works either
	_, err = svc.Verify(ctx, "1017234567", code)
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestMFAExpiredChallenge(t *testing.T) {
	svc, mr := newMFAService(t, mfaUser(t))
	ctx := context.Background()

	code, err := svc.IssueChallenge(ctx, "1017234567")
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	_, err = svc.Verify(ctx, "1017234567", code)
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestMFAVerifyWithoutChallenge(t *testing.T) {
	svc, _ := newMFAService(t, mfaUser(t))

	_, err := svc.Verify(context.Background(), "1017234567", "123456")
	assertDomainCode(t, err, "UNAUTHORIZED")
}
