package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bloqueos — franjas puntuales fuera de servicio (mantenimiento, eventos).
type MaintenanceBlock struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourtID uuid.UUID `gorm:"type:uuid;not null;index:idx_bloqueos_cancha_fecha"`
	Date    string    `gorm:"type:varchar(10);not null;index:idx_bloqueos_cancha_fecha"`

	StartTime string `gorm:"type:varchar(5);not null"`
	EndTime   string `gorm:"type:varchar(5);not null"`
	Reason    string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`

	Court *Court `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (MaintenanceBlock) TableName() string { return "bloqueos" }

func (b *MaintenanceBlock) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
