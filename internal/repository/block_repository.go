package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

type BlockRepository interface {
	Create(ctx context.Context, block *model.MaintenanceBlock) error
	// Bloqueos de la cancha; date vacío = todos.
	ListByCourt(ctx context.Context, courtID, date string) ([]model.MaintenanceBlock, error)
	Delete(ctx context.Context, id string) error
}

type GormBlockRepository struct {
	db *gorm.DB
}

func NewGormBlockRepository(db *gorm.DB) *GormBlockRepository {
	return &GormBlockRepository{db: db}
}

func (r *GormBlockRepository) Create(ctx context.Context, block *model.MaintenanceBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *GormBlockRepository) ListByCourt(ctx context.Context, courtID, date string) ([]model.MaintenanceBlock, error) {
	q := r.db.WithContext(ctx).Model(&model.MaintenanceBlock{}).Where("court_id = ?", courtID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var blocks []model.MaintenanceBlock
	if err := q.Order("date ASC, start_time ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *GormBlockRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MaintenanceBlock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
