package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

type ExtraServiceRepository interface {
	GetByID(ctx context.Context, id string) (*model.ExtraService, error)
	Create(ctx context.Context, service *model.ExtraService) error
	Update(ctx context.Context, service *model.ExtraService) error
	ListByCourt(ctx context.Context, courtID string, onlyAvailable bool) ([]model.ExtraService, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ExtraService, error)
	Delete(ctx context.Context, id string) error
}

type GormExtraServiceRepository struct {
	db *gorm.DB
}

func NewGormExtraServiceRepository(db *gorm.DB) *GormExtraServiceRepository {
	return &GormExtraServiceRepository{db: db}
}

func (r *GormExtraServiceRepository) GetByID(ctx context.Context, id string) (*model.ExtraService, error) {
	var s model.ExtraService
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormExtraServiceRepository) Create(ctx context.Context, service *model.ExtraService) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *GormExtraServiceRepository) Update(ctx context.Context, service *model.ExtraService) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *GormExtraServiceRepository) ListByCourt(ctx context.Context, courtID string, onlyAvailable bool) ([]model.ExtraService, error) {
	q := r.db.WithContext(ctx).Model(&model.ExtraService{}).Where("court_id = ?", courtID)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}

	var services []model.ExtraService
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormExtraServiceRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ExtraService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []model.ExtraService
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormExtraServiceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ExtraService{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
