package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

type CourtRepository interface {
	Create(ctx context.Context, court *model.Court) error
	GetByID(ctx context.Context, id string) (*model.Court, error)
	// Lista de canchas; sport vacío = todas.
	List(ctx context.Context, sport string) ([]model.Court, error)
	Update(ctx context.Context, court *model.Court) error
	// Borra la cancha junto con sus servicios, bloqueos y reservas.
	Delete(ctx context.Context, id string) error
	// Hay reservas no canceladas con fecha >= fromDate (YYYY-MM-DD).
	HasActiveReservationsFrom(ctx context.Context, id, fromDate string) (bool, error)
}

type GormCourtRepository struct {
	db *gorm.DB
}

func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

func (r *GormCourtRepository) Create(ctx context.Context, court *model.Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *GormCourtRepository) GetByID(ctx context.Context, id string) (*model.Court, error) {
	var c model.Court
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCourtRepository) List(ctx context.Context, sport string) ([]model.Court, error) {
	q := r.db.WithContext(ctx).Model(&model.Court{})
	if sport != "" {
		q = q.Where("sport_type = ?", sport)
	}

	var courts []model.Court
	if err := q.Order("name ASC").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *GormCourtRepository) Update(ctx context.Context, court *model.Court) error {
	return r.db.WithContext(ctx).Save(court).Error
}

func (r *GormCourtRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservations := tx.Model(&model.Reservation{}).Select("id").Where("court_id = ?", id)
		if err := tx.Where("reservation_id IN (?)", reservations).Delete(&model.ReservationExtra{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", id).Delete(&model.Reservation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", id).Delete(&model.MaintenanceBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id = ?", id).Delete(&model.ExtraService{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Court{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormCourtRepository) HasActiveReservationsFrom(ctx context.Context, id, fromDate string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("court_id = ?", id).
		Where("status <> ?", calendar.StatusCancelled).
		Where("date >= ?", fromDate).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
