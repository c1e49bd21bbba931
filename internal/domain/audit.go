package domain

import "time"

// AuditRecord is a persisted trace of a security-relevant action.
type AuditRecord struct {
	ID          string
	EventType   string
	ActorCedula string
	Detail      string
	OccurredAt  time.Time
}
