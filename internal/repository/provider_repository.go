package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

type ProviderRepository interface {
	// GetByID devuelve el proveedor con sus canchas ordenadas por nombre.
	GetByID(ctx context.Context, id string) (*model.Provider, error)
	FindByEmail(ctx context.Context, email string) (*model.Provider, error)
	Create(ctx context.Context, provider *model.Provider) error
}

type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

func (r *GormProviderRepository) GetByID(ctx context.Context, id string) (*model.Provider, error) {
	var p model.Provider
	err := r.db.WithContext(ctx).
		Preload("Courts", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByEmail compara sin distinguir mayúsculas.
func (r *GormProviderRepository) FindByEmail(ctx context.Context, email string) (*model.Provider, error) {
	var p model.Provider
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}
