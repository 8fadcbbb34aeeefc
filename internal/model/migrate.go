package model

import "gorm.io/gorm"

// AutoMigrate crea o actualiza todas las tablas del sistema de reservas.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Provider{},
		&Court{},
		&ExtraService{},
		&Reservation{},
		&ReservationExtra{},
		&MaintenanceBlock{},
		&Event{},
	)
}
