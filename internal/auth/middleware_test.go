package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/domain"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

func newGateApp(t *testing.T) (*fiber.App, *auth.TokenService) {
	t.Helper()

	directory := auth.NewRoleDirectory(&staticRoleSource{roles: []domain.Role{
		{ID: 1, Name: "Administrador"},
		{ID: 3, Name: "Conductor"},
	}})
	require.NoError(t, directory.Load(context.Background()))

	tokens := auth.NewTokenService(testSecret, 1)
	table := auth.NewRuleTable(
		auth.Rule{Method: "GET", Pattern: "/routes/estados", Requirement: auth.Public()},
		auth.Rule{Method: "GET", Pattern: "/routes/get/all", Requirement: auth.AnyOf(domain.RoleAdmin, domain.RoleAuditor)},
		auth.Rule{Method: "GET", Pattern: "/user", Requirement: auth.Authenticated()},
	)
	gate := auth.NewGate(table, tokens, directory)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})
	app.Use(gate.Handle)
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/routes/estados", ok)
	app.Get("/routes/get/all", ok)
	app.Get("/user", ok)

	return app, tokens
}

func TestGatePublicBypassesAuthentication(t *testing.T) {
	app, _ := newGateApp(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/routes/estados", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGateDeniesAnonymous(t *testing.T) {
	app, _ := newGateApp(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/routes/get/all", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/user", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGateRoleRestriction(t *testing.T) {
	app, tokens := newGateApp(t)

	adminToken, _, err := tokens.Issue("100", "admin", 1)
	require.NoError(t, err)
	conductorToken, _, err := tokens.Issue("300", "conductor", 3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/routes/get/all", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/routes/get/all", nil)
	req.Header.Set("Authorization", "Bearer "+conductorToken)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// any valid role passes an authenticated-only rule
	req = httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+conductorToken)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGateRejectsBadTokens(t *testing.T) {
	app, _ := newGateApp(t)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "NotBearer something")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
