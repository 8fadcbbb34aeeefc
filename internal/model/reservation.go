package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
)

// reservas
//
// El índice único parcial impide dos reservas no canceladas con la misma
// franja en la misma cancha, aun con escrituras concurrentes.
type Reservation struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourtID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reservas_franja_activa,priority:1,where:status <> 'cancelada'"`

	Date      string `gorm:"type:varchar(10);not null;index;uniqueIndex:idx_reservas_franja_activa,priority:2"`
	StartTime string `gorm:"type:varchar(5);not null;uniqueIndex:idx_reservas_franja_activa,priority:3"`
	EndTime   string `gorm:"type:varchar(5);not null;uniqueIndex:idx_reservas_franja_activa,priority:4"`

	Status calendar.ReservationStatus `gorm:"type:varchar(16);not null;index"`
	// Inasistencia: se guarda como completada con esta marca.
	NoShow bool `gorm:"not null"`

	ClientName    string        `gorm:"type:varchar(255);not null"`
	ClientPhone   string        `gorm:"type:varchar(32);not null;index"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(32);not null"`

	// Precio de la cancha + servicios extra; no cambia tras la creación.
	Total int64 `gorm:"not null"`

	CancelledAt *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Court  *Court             `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Extras []ReservationExtra `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Reservation) TableName() string { return "reservas" }

func (r *Reservation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = calendar.StatusScheduled
	}
	return nil
}

// ReservationExtra guarda una copia del servicio extra con el precio aplicado.
type ReservationExtra struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReservationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID     uuid.UUID `gorm:"type:uuid;not null"`

	Name         string `gorm:"type:varchar(255);not null"`
	AppliedPrice int64  `gorm:"not null"`
}

func (ReservationExtra) TableName() string { return "reserva_servicios" }

func (e *ReservationExtra) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Calendar convierte la fila a la forma canónica del motor.
func (r *Reservation) Calendar() calendar.Reservation {
	out := calendar.Reservation{
		ID:          r.ID.String(),
		CourtID:     r.CourtID.String(),
		Date:        r.Date,
		Start:       r.StartTime,
		End:         r.EndTime,
		Status:      calendar.ParseStatus(string(r.Status)),
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Total:       r.Total,
	}
	for _, e := range r.Extras {
		out.Extras = append(out.Extras, calendar.ExtraSnapshot{
			ServiceID:    e.ServiceID.String(),
			Name:         e.Name,
			AppliedPrice: e.AppliedPrice,
		})
	}
	return out
}
