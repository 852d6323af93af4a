package repository

import (
	"context"
	"time"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"gorm.io/gorm"
)

// SitemapEntry is the minimal projection the sitemap needs
type SitemapEntry struct {
	Slug      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	FindByID(ctx context.Context, id uint) (*model.Business, error)
	FindBySlug(ctx context.Context, slug string) (*model.Business, error)
	List(ctx context.Context, query BusinessQuery, offset, limit int) ([]model.Business, int64, error)
	ListSitemapEntries(ctx context.Context) ([]SitemapEntry, error)
	SubCategories(ctx context.Context, category string) ([]string, error)
	UpdateRatingAggregate(ctx context.Context, id uint) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create inserts the business as-is. A slug collision surfaces as
// gorm.ErrDuplicatedKey when the connection translates errors.
func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	logger.Debug("Creating business in database", map[string]interface{}{
		"name":     business.Name,
		"slug":     business.Slug,
		"category": business.Category,
	})

	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		return err
	}

	logger.Debug("Business created in database", map[string]interface{}{
		"business_id": business.ID,
		"slug":        business.Slug,
	})
	return nil
}

func (r *businessRepository) FindByID(ctx context.Context, id uint) (*model.Business, error) {
	var business model.Business
	if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindBySlug(ctx context.Context, slug string) (*model.Business, error) {
	var business model.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// List returns one page of matching businesses, newest first, and the total
// number of matches.
func (r *businessRepository) List(ctx context.Context, query BusinessQuery, offset, limit int) ([]model.Business, int64, error) {
	logger.Debug("Listing businesses", map[string]interface{}{
		"category": query.Category,
		"province": query.Province,
		"city":     query.City,
		"area":     query.Area,
		"status":   query.Status,
		"q":        query.Q,
		"offset":   offset,
		"limit":    limit,
	})

	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Business{}).Scopes(query.Scope())
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		logger.Error("Failed to count businesses", err)
		return nil, 0, err
	}

	businesses := make([]model.Business, 0, limit)
	if total == 0 || int64(offset) >= total {
		return businesses, total, nil
	}

	if err := scoped().
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&businesses).Error; err != nil {
		logger.Error("Failed to list businesses", err)
		return nil, 0, err
	}

	return businesses, total, nil
}

func (r *businessRepository) ListSitemapEntries(ctx context.Context) ([]SitemapEntry, error) {
	var entries []SitemapEntry
	err := r.db.WithContext(ctx).
		Model(&model.Business{}).
		Select("slug", "created_at", "updated_at").
		Order("created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SubCategories lists the distinct non-empty sub categories used by
// businesses of one category.
func (r *businessRepository) SubCategories(ctx context.Context, category string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("category = ? AND sub_category <> ''", category).
		Distinct("sub_category").
		Order("sub_category ASC").
		Pluck("sub_category", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

// UpdateRatingAggregate rewrites rating_avg and rating_count from the reviews
// table in one statement, so concurrent writers cannot lose each other's update.
func (r *businessRepository) UpdateRatingAggregate(ctx context.Context, id uint) error {
	key := (&model.Business{ID: id}).ReviewKey()

	result := r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"rating_count": gorm.Expr("(SELECT COUNT(*) FROM reviews WHERE business_id = ?)", key),
			"rating_avg":   gorm.Expr("(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE business_id = ?)", key),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
