package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/couriersync/courier-backoffice/internal/domain"
	"github.com/couriersync/courier-backoffice/internal/events"
	"github.com/couriersync/courier-backoffice/internal/repository"
)

// AuditService persists an audit trail for security-relevant domain events.
type AuditService struct {
	dispatcher events.Dispatcher
	records    repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, records repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		records:    records,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to all audited event types.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventLoginSucceeded,
		events.EventLoginMFAChallenged,
		events.EventLogout,
		events.EventRouteCreated,
		events.EventRouteUpdated,
		events.EventRouteDeleted,
	} {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

// ListRecent returns the newest audit records.
func (a *AuditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return a.records.ListRecent(ctx, limit)
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	detail := ""
	if event.Payload != nil {
		if raw, err := json.Marshal(event.Payload); err == nil {
			detail = string(raw)
		}
	}

	record := &domain.AuditRecord{
		ID:          event.ID,
		EventType:   string(event.Type),
		ActorCedula: event.ActorCedula,
		Detail:      detail,
		OccurredAt:  event.Timestamp,
	}
	if err := a.records.Insert(ctx, record); err != nil {
		a.logger.Error("persist audit record",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}

	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("actor", event.ActorCedula))
	return nil
}
