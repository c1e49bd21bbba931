package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventLoginSucceeded     EventType = "login_succeeded"
	EventLoginMFAChallenged EventType = "login_mfa_challenged"
	EventLogout             EventType = "logout"
	EventRouteCreated       EventType = "route_created"
	EventRouteUpdated       EventType = "route_updated"
	EventRouteDeleted       EventType = "route_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ActorCedula string      `json:"actor_cedula"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
	ViaMFA   bool   `json:"via_mfa"`
}

// RouteMutationPayload payload for route create/update/delete.
type RouteMutationPayload struct {
	RouteID int `json:"route_id"`
}
