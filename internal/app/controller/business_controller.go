package controller

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	apperrors "github.com/ikkim/bizdir-backend/internal/errors"
	"github.com/ikkim/bizdir-backend/internal/middleware"
	"github.com/ikkim/bizdir-backend/internal/validation"
)

// maxFormMemory is how much of a multipart body is buffered before spilling to disk
const maxFormMemory = 8 << 20

type BusinessController struct {
	businessService service.BusinessService
}

func NewBusinessController(businessService service.BusinessService) *BusinessController {
	return &BusinessController{
		businessService: businessService,
	}
}

// GetBusinesses returns one business when id or slug is given, otherwise a page
// GET /api/business
func (ctrl *BusinessController) GetBusinesses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Query("id")
	slug := c.Query("slug")
	if id != "" || slug != "" {
		business, err := ctrl.businessService.GetByIDOrSlug(c.Request.Context(), id, slug)
		if err != nil {
			if errors.Is(err, service.ErrBusinessNotFound) {
				log.Warn("Business not found", map[string]interface{}{
					"id":   id,
					"slug": slug,
				})
				apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
				return
			}
			respondWithServiceError(c, err, "get business")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"business": business,
		})
		return
	}

	query := repository.BusinessQuery{
		Category: c.Query("category"),
		Province: c.Query("province"),
		City:     c.Query("city"),
		Area:     c.Query("area"),
		Status:   c.Query("status"),
		Q:        c.Query("q"),
	}
	page := service.ParsePage(c.Query("page"))
	limit := service.ParseLimit(c.Query("limit"))

	result, err := ctrl.businessService.List(c.Request.Context(), query, page, limit)
	if err != nil {
		respondWithServiceError(c, err, "list businesses")
		return
	}

	log.Info("Businesses listed", map[string]interface{}{
		"count": len(result.Items),
		"total": result.Pagination.Total,
		"page":  page,
	})
	c.JSON(http.StatusOK, result)
}

// CreateBusiness accepts the multipart submission form
// POST /api/business
func (ctrl *BusinessController) CreateBusiness(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Warn("Invalid business submission form", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "The submitted form could not be read")
		return
	}

	var input validation.BusinessInput
	if err := c.ShouldBind(&input); err != nil {
		log.Warn("Invalid business submission", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "The submitted form could not be read")
		return
	}

	logo, closeLogo, err := logoFromForm(c)
	if err != nil {
		log.Warn("Could not read logo, continuing without it", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer closeLogo()

	business, err := ctrl.businessService.Create(c.Request.Context(), &input, logo)
	if err != nil {
		if errors.Is(err, service.ErrSlugUnavailable) {
			apperrors.Conflict(c, apperrors.BusinessSlugExists, "A listing with this name already exists")
			return
		}
		respondWithServiceError(c, err, "create business")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"business": business,
	})
}

// logoFromForm opens the optional logo part. The returned close func is always safe to call.
func logoFromForm(c *gin.Context) (*service.LogoFile, func(), error) {
	noop := func() {}

	header, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	return &service.LogoFile{
		ContentType: contentTypeOf(header),
		Size:        header.Size,
		Body:        file,
	}, func() { _ = file.Close() }, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
