package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	apperrors "github.com/ikkim/bizdir-backend/internal/errors"
	"github.com/ikkim/bizdir-backend/internal/middleware"
	"github.com/ikkim/bizdir-backend/internal/validation"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// GetReviews returns the latest reviews and a freshly computed aggregate
// GET /api/reviews?businessId=
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	result, err := ctrl.reviewService.ListForBusiness(c.Request.Context(), c.Query("businessId"))
	if err != nil {
		respondWithServiceError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateReview stores a review and returns the updated aggregate
// POST /api/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input validation.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid review request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "The review could not be read")
		return
	}

	review, aggregate, err := ctrl.reviewService.Create(c.Request.Context(), &input)
	if err != nil {
		respondWithServiceError(c, err, "create review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"review":    review,
		"aggregate": aggregate,
	})
}
