package repository

import (
	"context"
	"strings"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListActive(ctx context.Context, nameFilter string, limit int) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	IncrementCount(ctx context.Context, slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// ListActive returns active categories, busiest first. nameFilter is a
// case-insensitive substring of the name.
func (r *categoryRepository) ListActive(ctx context.Context, nameFilter string, limit int) ([]model.Category, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if term := strings.TrimSpace(nameFilter); term != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(term))+"%")
	}

	categories := make([]model.Category, 0)
	err := query.
		Order("count DESC").
		Order("name ASC").
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// IncrementCount bumps the denormalized business count. Unknown slugs are
// reported as gorm.ErrRecordNotFound.
func (r *categoryRepository) IncrementCount(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("slug = ?", slug).
		UpdateColumn("count", gorm.Expr("count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
