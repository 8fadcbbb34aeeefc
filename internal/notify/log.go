package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher solo registra los eventos; se usa cuando no hay broker configurado.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, routingKey string, event ReservationEvent) error {
	p.logger.Info("Reservation event",
		zap.String("routing_key", routingKey),
		zap.String("reservation_id", event.ReservationID),
		zap.String("court_id", event.CourtID),
		zap.String("slot", event.Slot),
		zap.Int64("total", event.Total),
	)
	return nil
}
