package notify

import (
	"context"
	"time"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
)

// Claves de enrutamiento en el exchange de reservas.
const (
	RoutingReservationCreated   = "reserva.creada"
	RoutingReservationCancelled = "reserva.cancelada"
	RoutingReservationCompleted = "reserva.completada"
	RoutingReservationNoShow    = "reserva.no_show"
)

// ReservationEvent — lo que reciben los consumidores (correo, comprobantes PDF).
type ReservationEvent struct {
	ReservationID string                     `json:"reserva_id"`
	CourtID       string                     `json:"cancha_id"`
	Date          string                     `json:"fecha"`
	Start         string                     `json:"inicio"`
	End           string                     `json:"fin"`
	Slot          string                     `json:"franja"`
	Status        calendar.ReservationStatus `json:"estado"`
	NoShow        bool                       `json:"no_show"`
	ClientName    string                     `json:"cliente_nombre"`
	ClientPhone   string                     `json:"cliente_telefono"`
	Total         int64                      `json:"total"`
	Extras        []calendar.ExtraSnapshot   `json:"servicios_extra"`
	OccurredAt    time.Time                  `json:"ocurrido_en"`
}

// NewReservationEvent arma el evento a partir de la forma canónica de la reserva.
func NewReservationEvent(r calendar.Reservation, noShow bool, at time.Time) ReservationEvent {
	return ReservationEvent{
		ReservationID: r.ID,
		CourtID:       r.CourtID,
		Date:          r.Date,
		Start:         r.Start,
		End:           r.End,
		Slot:          calendar.FormatSlot(r.Date, r.Start, r.End),
		Status:        r.Status,
		NoShow:        noShow,
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		Total:         r.Total,
		Extras:        r.Extras,
		OccurredAt:    at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event ReservationEvent) error
}
