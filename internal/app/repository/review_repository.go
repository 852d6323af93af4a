package repository

import (
	"context"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]model.Review, error)
	Aggregate(ctx context.Context, businessID string) (model.RatingAggregate, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListByBusiness returns the most recent reviews first
func (r *reviewRepository) ListByBusiness(ctx context.Context, businessID string, limit int) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Aggregate computes count and mean rating over every review of the business
func (r *reviewRepository) Aggregate(ctx context.Context, businessID string) (model.RatingAggregate, error) {
	var row struct {
		Count int64
		Avg   float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("business_id = ?", businessID).
		Scan(&row).Error
	if err != nil {
		return model.RatingAggregate{}, err
	}
	return model.RatingAggregate{Avg: row.Avg, Count: row.Count}, nil
}
