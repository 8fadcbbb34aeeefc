package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/notify"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
)

// auditor escribe el rastro de auditoría y publica eventos de reserva.
// Ninguna de las dos cosas hace fallar la operación que las origina.
type auditor struct {
	events    repository.EventRepository
	publisher notify.Publisher
	logger    *zap.Logger
}

func (a auditor) record(ctx context.Context, typ model.EventType, courtID, reservationID uuid.UUID, details string) {
	ev := &model.Event{EventType: typ, Details: details}
	if courtID != uuid.Nil {
		ev.CourtID = &courtID
	}
	if reservationID != uuid.Nil {
		ev.ReservationID = &reservationID
	}
	if err := a.events.Create(ctx, ev); err != nil {
		a.logger.Warn("Failed to record audit event",
			zap.String("event_type", string(typ)),
			zap.Error(err),
		)
	}
}

func (a auditor) publish(ctx context.Context, routingKey string, ev notify.ReservationEvent) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, routingKey, ev); err != nil {
		a.logger.Warn("Failed to publish reservation event",
			zap.String("routing_key", routingKey),
			zap.String("reservation_id", ev.ReservationID),
			zap.Error(err),
		)
	}
}
