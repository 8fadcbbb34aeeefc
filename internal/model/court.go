package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
)

// WeeklySchedule: día de la semana (0=domingo..6=sábado) → franjas abiertas.
type WeeklySchedule map[int][]calendar.Interval

// canchas
type Court struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProviderID *uuid.UUID `gorm:"type:uuid;index"`

	Name        string `gorm:"type:varchar(255);not null"`
	SportType   string `gorm:"type:varchar(64);index"`
	Address     string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`

	// Precio base en pesos enteros.
	Price int64 `gorm:"not null"`

	// Se guardan como JSON (JSONB en Postgres).
	WeeklySchedule datatypes.JSONType[WeeklySchedule]
	ClosedWeekdays datatypes.JSONType[[]int]
	ClosedDates    datatypes.JSONType[[]string]

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Provider      *Provider      `gorm:"foreignKey:ProviderID"`
	ExtraServices []ExtraService `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Court) TableName() string { return "canchas" }

func (c *Court) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Calendar convierte la fila al modelo del motor de disponibilidad.
func (c *Court) Calendar() calendar.Court {
	out := calendar.Court{
		ID:             c.ID.String(),
		WeeklySchedule: make(map[time.Weekday][]calendar.Interval),
		ClosedWeekdays: make(map[time.Weekday]bool),
		ClosedDates:    make(map[string]bool),
		Price:          c.Price,
	}
	for day, bands := range c.WeeklySchedule.Data() {
		out.WeeklySchedule[time.Weekday(day)] = bands
	}
	for _, day := range c.ClosedWeekdays.Data() {
		out.ClosedWeekdays[time.Weekday(day)] = true
	}
	for _, date := range c.ClosedDates.Data() {
		out.ClosedDates[calendar.NormalizeDate(date)] = true
	}
	return out
}
