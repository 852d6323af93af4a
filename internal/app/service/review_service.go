package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/internal/validation"
	"github.com/ikkim/bizdir-backend/pkg/logger"
)

// ReviewPageSize caps how many reviews a business page shows
const ReviewPageSize = 50

type ReviewList struct {
	Reviews   []model.Review        `json:"reviews"`
	Aggregate model.RatingAggregate `json:"aggregate"`
}

type ReviewService interface {
	ListForBusiness(ctx context.Context, businessID string) (*ReviewList, error)
	Create(ctx context.Context, input *validation.ReviewInput) (*model.Review, model.RatingAggregate, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, businessRepo repository.BusinessRepository) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
	}
}

// canonicalBusinessID returns the numeric id in its canonical string form, so
// "007" and "7" address the same reviews. ok is false for non-numeric ids.
func canonicalBusinessID(raw string) (string, uint, bool) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return raw, 0, false
	}
	return strconv.FormatUint(id, 10), uint(id), true
}

// ListForBusiness returns the latest reviews and an aggregate recomputed from
// the reviews table, never from the cached fields on the business.
func (s *reviewService) ListForBusiness(ctx context.Context, businessID string) (*ReviewList, error) {
	key, _, _ := canonicalBusinessID(businessID)
	if key == "" {
		return nil, &InvalidInputError{Fields: map[string]string{"businessId": "This field is required"}}
	}

	reviews, err := s.reviewRepo.ListByBusiness(ctx, key, ReviewPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	aggregate, err := s.reviewRepo.Aggregate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	return &ReviewList{Reviews: reviews, Aggregate: aggregate}, nil
}

// Create stores the review and refreshes the cached rating on the business.
// The refresh is best effort: the review is kept even if it fails.
func (s *reviewService) Create(ctx context.Context, input *validation.ReviewInput) (*model.Review, model.RatingAggregate, error) {
	if fields := input.Validate(); fields != nil {
		return nil, model.RatingAggregate{}, &InvalidInputError{Fields: fields}
	}

	key, numericID, valid := canonicalBusinessID(input.BusinessID)

	review := &model.Review{
		BusinessID: key,
		Name:       input.Name,
		Rating:     int(input.Rating),
		Comment:    input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"business_id": key,
		})
		return nil, model.RatingAggregate{}, fmt.Errorf("failed to create review: %w", err)
	}

	if valid {
		if err := s.businessRepo.UpdateRatingAggregate(ctx, numericID); err != nil {
			logger.Warn("Failed to refresh business rating", map[string]interface{}{
				"business_id": key,
				"error":       err.Error(),
			})
		}
	} else {
		logger.Warn("Review references a non-numeric business id, rating not cached", map[string]interface{}{
			"business_id": key,
		})
	}

	aggregate, err := s.reviewRepo.Aggregate(ctx, key)
	if err != nil {
		return nil, model.RatingAggregate{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	logger.Info("Review submitted", map[string]interface{}{
		"review_id":    review.ID,
		"business_id":  key,
		"rating":       review.Rating,
		"rating_count": aggregate.Count,
	})
	return review, aggregate, nil
}
