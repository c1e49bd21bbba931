package domain

// RoleName is a normalized role identifier carried in authorization decisions.
type RoleName string

const (
	RoleAdmin      RoleName = "ROLE_ADMIN"
	RoleGestorRuta RoleName = "ROLE_GESTORRUTA"
	RoleConductor  RoleName = "ROLE_CONDUCTOR"
	RoleAuditor    RoleName = "ROLE_AUDITOR"
	RoleUser       RoleName = "ROLE_USER"
)

// Role is a row of the role table: a small integer id and a display name. The
// display name is normalized into a RoleName before use.
type Role struct {
	ID   int
	Name string
}
