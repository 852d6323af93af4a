package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBusiness(t *testing.T, repos testRepos, slug string) *model.Business {
	business := &model.Business{Name: slug, Slug: slug, Category: "restaurants", Province: "Punjab", City: "Lahore"}
	require.NoError(t, repos.businesses.Create(context.Background(), business))
	return business
}

func TestReviewService_AggregateAfterWrites(t *testing.T) {
	repos := setupServiceTest(t)
	svc := NewReviewService(repos.reviews, repos.businesses)
	ctx := context.Background()

	business := createTestBusiness(t, repos, "chai-point")

	var last model.RatingAggregate
	for _, rating := range []float64{5, 3, 4} {
		review, aggregate, err := svc.Create(ctx, &validation.ReviewInput{
			BusinessID: business.ReviewKey(),
			Name:       "Ayesha Khan",
			Rating:     rating,
			Comment:    "Chai was hot and the staff were kind",
		})
		require.NoError(t, err)
		assert.NotZero(t, review.ID)
		last = aggregate
	}
	assert.Equal(t, model.RatingAggregate{Avg: 4, Count: 3}, last)

	list, err := svc.ListForBusiness(ctx, business.ReviewKey())
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 3)
	assert.Equal(t, int64(3), list.Aggregate.Count)
	assert.InDelta(t, 4.0, list.Aggregate.Avg, 1e-9)

	cached, err := repos.businesses.FindByID(ctx, business.ID)
	require.NoError(t, err)
	require.NotNil(t, cached.RatingAvg)
	require.NotNil(t, cached.RatingCount)
	assert.InDelta(t, 4.0, *cached.RatingAvg, 1e-9)
	assert.Equal(t, int64(3), *cached.RatingCount)
	assert.NotNil(t, cached.UpdatedAt)
}

func TestReviewService_CanonicalBusinessID(t *testing.T) {
	repos := setupServiceTest(t)
	svc := NewReviewService(repos.reviews, repos.businesses)
	ctx := context.Background()

	business := createTestBusiness(t, repos, "padded")
	padded := fmt.Sprintf("00%d", business.ID)

	review, aggregate, err := svc.Create(ctx, &validation.ReviewInput{
		BusinessID: padded,
		Name:       "Bilal",
		Rating:     2,
		Comment:    "Slow service on a Friday night",
	})
	require.NoError(t, err)
	assert.Equal(t, business.ReviewKey(), review.BusinessID)
	assert.Equal(t, int64(1), aggregate.Count)

	list, err := svc.ListForBusiness(ctx, padded)
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 1)
}

func TestReviewService_InvalidBusinessReferenceIsNonFatal(t *testing.T) {
	repos := setupServiceTest(t)
	svc := NewReviewService(repos.reviews, repos.businesses)
	ctx := context.Background()

	for _, id := range []string{"not-a-number", "424242"} {
		review, aggregate, err := svc.Create(ctx, &validation.ReviewInput{
			BusinessID: id,
			Name:       "Sana",
			Rating:     5,
			Comment:    "Excellent tailoring work",
		})
		require.NoError(t, err, id)
		assert.NotZero(t, review.ID)
		assert.Equal(t, model.RatingAggregate{Avg: 5, Count: 1}, aggregate)
	}
}

func TestReviewService_ValidationBlocksWrite(t *testing.T) {
	repos := setupServiceTest(t)
	svc := NewReviewService(repos.reviews, repos.businesses)
	ctx := context.Background()

	business := createTestBusiness(t, repos, "strict")

	tests := []struct {
		name  string
		input validation.ReviewInput
		field string
	}{
		{"rating above range", validation.ReviewInput{BusinessID: business.ReviewKey(), Name: "Omar", Rating: 6, Comment: "Too good to be true"}, "rating"},
		{"fractional rating", validation.ReviewInput{BusinessID: business.ReviewKey(), Name: "Omar", Rating: 3.5, Comment: "Somewhere in between"}, "rating"},
		{"short comment", validation.ReviewInput{BusinessID: business.ReviewKey(), Name: "Omar", Rating: 3, Comment: "ok"}, "comment"},
		{"missing business", validation.ReviewInput{Name: "Omar", Rating: 3, Comment: "Nice place overall"}, "businessId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, _, err := svc.Create(ctx, &input)

			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Contains(t, invalid.Fields, tt.field)
		})
	}

	list, err := svc.ListForBusiness(ctx, business.ReviewKey())
	require.NoError(t, err)
	assert.Empty(t, list.Reviews)
	assert.Equal(t, model.RatingAggregate{}, list.Aggregate)
}

func TestReviewService_ListCapsReviews(t *testing.T) {
	repos := setupServiceTest(t)
	svc := NewReviewService(repos.reviews, repos.businesses)
	ctx := context.Background()

	for i := 0; i < ReviewPageSize+5; i++ {
		require.NoError(t, repos.reviews.Create(ctx, &model.Review{
			BusinessID: "77",
			Name:       "Guest",
			Rating:     1 + i%5,
			Comment:    "Visited with family",
		}))
	}

	list, err := svc.ListForBusiness(ctx, "77")
	require.NoError(t, err)
	assert.Len(t, list.Reviews, ReviewPageSize)
	assert.Equal(t, int64(ReviewPageSize+5), list.Aggregate.Count)

	_, err = svc.ListForBusiness(ctx, "  ")
	var invalid *InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}
