package repository

import (
	"context"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CityRepository interface {
	ListActive(ctx context.Context) ([]model.City, error)
	Provinces(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, cities []model.City) error
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) ListActive(ctx context.Context) ([]model.City, error) {
	cities := make([]model.City, 0)
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// Provinces lists the distinct non-empty provinces of active cities
func (r *cityRepository) Provinces(ctx context.Context) ([]string, error) {
	var provinces []string
	err := r.db.WithContext(ctx).
		Model(&model.City{}).
		Where("is_active = ? AND province <> ''", true).
		Distinct("province").
		Order("province ASC").
		Pluck("province", &provinces).Error
	if err != nil {
		return nil, err
	}
	return provinces, nil
}

// Upsert inserts cities by slug and refreshes the name of existing ones.
// Province and activation are left untouched on conflict.
func (r *cityRepository) Upsert(ctx context.Context, cities []model.City) error {
	if len(cities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&cities).Error
}
