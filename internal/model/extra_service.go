package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExtraServiceType string

const (
	ExtraServiceReferee     ExtraServiceType = "arbitraje"
	ExtraServiceAwards      ExtraServiceType = "premiacion"
	ExtraServiceCelebration ExtraServiceType = "celebracion"
	ExtraServiceOther       ExtraServiceType = "otro"
)

// servicios_extra
type ExtraService struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourtID uuid.UUID `gorm:"type:uuid;not null;index"`

	Type        ExtraServiceType `gorm:"type:varchar(32);not null"`
	Name        string           `gorm:"type:varchar(255);not null"`
	Description string           `gorm:"type:text"`
	Price       int64            `gorm:"not null"`

	DurationMinutes    int `gorm:"not null"`
	AdvanceNoticeHours int `gorm:"not null"`

	// Sin default: gorm no insertaría un false explícito.
	Available bool `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ExtraService) TableName() string { return "servicios_extra" }

func (s *ExtraService) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
