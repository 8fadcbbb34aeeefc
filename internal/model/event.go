package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipo de evento de auditoría.
type EventType string

const (
	EventReservationCreated   EventType = "reservation_created"
	EventReservationCancelled EventType = "reservation_cancelled"
	EventReservationCompleted EventType = "reservation_completed"
	EventReservationNoShow    EventType = "reservation_no_show"
	EventCourtCreated         EventType = "court_created"
	EventCourtUpdated         EventType = "court_updated"
	EventCourtDeleted         EventType = "court_deleted"
)

// Auditoría sin claves foráneas: las filas sobreviven al borrado de la cancha.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	CourtID       *uuid.UUID `gorm:"type:uuid;index"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index"`

	Details string `gorm:"type:text"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
