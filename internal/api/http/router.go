package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/couriersync/courier-backoffice/internal/api/http/handlers"
	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/domain"
)

// NewRuleTable declares the authorization rules in evaluation order. The
// first matching rule wins; unlisted paths require authentication.
func NewRuleTable() *auth.RuleTable {
	routeReaders := auth.AnyOf(domain.RoleAdmin, domain.RoleGestorRuta, domain.RoleAuditor)

	return auth.NewRuleTable(
		auth.Rule{Method: "POST", Pattern: "/login", Requirement: auth.Public()},
		auth.Rule{Method: "POST", Pattern: "/register", Requirement: auth.Public()},
		// logout checks the bearer token itself so it can answer 401 with the
		// original response shape instead of the gate's.
		auth.Rule{Method: "POST", Pattern: "/logout", Requirement: auth.Public()},
		auth.Rule{Method: "*", Pattern: "/api/mfa/**", Requirement: auth.Public()},
		auth.Rule{Method: "GET", Pattern: "/health/**", Requirement: auth.Public()},
		auth.Rule{Method: "GET", Pattern: "/v3/api-docs/**", Requirement: auth.Public()},
		auth.Rule{Method: "GET", Pattern: "/swagger-ui/**", Requirement: auth.Public()},
		auth.Rule{Method: "GET", Pattern: "/user", Requirement: auth.Authenticated()},
		auth.Rule{Method: "POST", Pattern: "/roles/refresh", Requirement: auth.AnyOf(domain.RoleAdmin)},
		auth.Rule{Method: "GET", Pattern: "/audit", Requirement: auth.AnyOf(domain.RoleAdmin, domain.RoleAuditor)},
		auth.Rule{Method: "POST", Pattern: "/routes/create", Requirement: auth.AnyOf(domain.RoleAdmin)},
		auth.Rule{Method: "PUT", Pattern: "/routes/update/:id", Requirement: auth.AnyOf(domain.RoleAdmin, domain.RoleGestorRuta)},
		auth.Rule{Method: "DELETE", Pattern: "/routes/delete/:id", Requirement: auth.Authenticated()},
		auth.Rule{Method: "GET", Pattern: "/routes/get/all", Requirement: routeReaders},
		auth.Rule{Method: "GET", Pattern: "/routes/estados", Requirement: auth.Public()},
		auth.Rule{Method: "GET", Pattern: "/routes/by-estado", Requirement: auth.Authenticated()},
		// "all" must precede the level parameter or it would be read as one.
		auth.Rule{Method: "GET", Pattern: "/routes/trafico/all", Requirement: routeReaders},
		auth.Rule{Method: "GET", Pattern: "/routes/trafico/:nivel", Requirement: routeReaders},
	)
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	MFA    *handlers.MFAHandler
	Routes *handlers.RoutesHandler
	Roles  *handlers.RolesHandler
	Audit  *handlers.AuditHandler
	Gate   *auth.Gate
}

// RegisterRoutes wires HTTP routes behind the authorization gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)
	app.Get("/user", cfg.Auth.GetUser)

	app.Post("/api/mfa/verify", cfg.MFA.Verify)

	app.Post("/roles/refresh", cfg.Roles.Refresh)
	app.Get("/audit", cfg.Audit.ListRecent)

	routes := app.Group("/routes")
	routes.Post("/create", cfg.Routes.Create)
	routes.Put("/update/:id", cfg.Routes.Update)
	routes.Delete("/delete/:id", cfg.Routes.Delete)
	routes.Get("/get/all", cfg.Routes.ListAll)
	routes.Get("/estados", cfg.Routes.ListStatuses)
	routes.Get("/by-estado", cfg.Routes.ByStatus)
	routes.Get("/trafico/all", cfg.Routes.OrderedByTraffic)
	routes.Get("/trafico/:nivel", cfg.Routes.ByTraffic)
}
