package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/domain"
	apperrors "github.com/couriersync/courier-backoffice/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Cedula   string
	Username string
	RoleID   int
	Role     domain.RoleName
}

// Gate evaluates the authorization rule table for every request. Public rules
// bypass authentication entirely; all others need a valid bearer token, and
// role-restricted rules additionally check the decoded role against the
// allowed set. Evaluation is per-request with no shared mutable state beyond
// the read-only rule table and the role directory snapshot.
type Gate struct {
	table  *RuleTable
	tokens *TokenService
	roles  *RoleDirectory
}

// NewGate constructs the gate middleware.
func NewGate(table *RuleTable, tokens *TokenService, roles *RoleDirectory) *Gate {
	return &Gate{table: table, tokens: tokens, roles: roles}
}

// Handle enforces the matched rule for the incoming request.
func (g *Gate) Handle(c *fiber.Ctx) error {
	requirement := g.table.Match(c.Method(), c.Path())
	if requirement.IsPublic() {
		return c.Next()
	}

	token, err := bearerToken(c.Get("Authorization"))
	if err != nil {
		return err
	}

	claims, err := g.tokens.Parse(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	role := g.roles.Lookup(claims.RoleID)
	if !requirement.Allows(role) {
		return apperrors.NewForbidden("insufficient role")
	}

	c.Locals(principalKey, &Principal{
		Cedula:   claims.Cedula,
		Username: claims.Username,
		RoleID:   claims.RoleID,
		Role:     role,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}
