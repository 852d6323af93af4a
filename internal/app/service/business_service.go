package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	apperrors "github.com/ikkim/bizdir-backend/internal/errors"
	"github.com/ikkim/bizdir-backend/internal/storage"
	"github.com/ikkim/bizdir-backend/internal/validation"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"github.com/ikkim/bizdir-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrSlugUnavailable  = errors.New("no free slug for business name")
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100

	maxSlugAttempts = 50
)

// InvalidInputError carries per-field messages for a rejected submission
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid input: " + strings.Join(names, ", ")
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type BusinessPage struct {
	Items      []model.Business `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// LogoFile is an uploaded logo as received from the form
type LogoFile struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

type BusinessService interface {
	List(ctx context.Context, query repository.BusinessQuery, page, limit int) (*BusinessPage, error)
	GetByIDOrSlug(ctx context.Context, id, slug string) (*model.Business, error)
	Create(ctx context.Context, input *validation.BusinessInput, logo *LogoFile) (*model.Business, error)
}

type businessService struct {
	businessRepo repository.BusinessRepository
	categoryRepo repository.CategoryRepository
	uploader     storage.LogoUploader
}

func NewBusinessService(
	businessRepo repository.BusinessRepository,
	categoryRepo repository.CategoryRepository,
	uploader storage.LogoUploader,
) BusinessService {
	return &businessService{
		businessRepo: businessRepo,
		categoryRepo: categoryRepo,
		uploader:     uploader,
	}
}

// ParsePage reads a 1-based page number; anything unusable becomes 1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// ParseLimit reads a page size; anything unusable becomes 12, large values are capped
func ParseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// PageCount is ceil(total/limit)
func PageCount(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// pageOffset is (page-1)*limit, saturating at math.MaxInt instead of wrapping
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func (s *businessService) List(ctx context.Context, query repository.BusinessQuery, page, limit int) (*BusinessPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	items, total, err := s.businessRepo.List(ctx, query, pageOffset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	return &BusinessPage{
		Items: items,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: PageCount(total, limit),
		},
	}, nil
}

// GetByIDOrSlug looks a business up by numeric id, or by slug. An id that is
// not numeric is treated as a slug rather than rejected.
func (s *businessService) GetByIDOrSlug(ctx context.Context, id, slug string) (*model.Business, error) {
	id = strings.TrimSpace(id)
	slug = strings.TrimSpace(slug)

	var (
		business *model.Business
		err      error
	)
	switch {
	case id != "":
		if numericID, parseErr := strconv.ParseUint(id, 10, 64); parseErr == nil {
			business, err = s.businessRepo.FindByID(ctx, uint(numericID))
		} else {
			business, err = s.businessRepo.FindBySlug(ctx, id)
		}
	case slug != "":
		business, err = s.businessRepo.FindBySlug(ctx, slug)
	default:
		return nil, ErrBusinessNotFound
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	return business, nil
}

// Create validates the submission, uploads the logo when possible, and
// inserts the business under the first free slug.
func (s *businessService) Create(ctx context.Context, input *validation.BusinessInput, logo *LogoFile) (*model.Business, error) {
	if fields := input.Validate(); fields != nil {
		return nil, &InvalidInputError{Fields: fields}
	}

	business := input.ToModel()
	s.attachLogo(ctx, business, logo)

	base := util.Slugify(business.Name)
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		business.Slug = util.SlugCandidate(base, attempt)

		err := s.businessRepo.Create(ctx, business)
		if err == nil {
			break
		}
		if !apperrors.IsDuplicateKey(err) {
			logger.Error("Failed to create business", err, map[string]interface{}{
				"name": business.Name,
				"slug": business.Slug,
			})
			return nil, fmt.Errorf("failed to create business: %w", err)
		}
		if attempt == maxSlugAttempts-1 {
			return nil, ErrSlugUnavailable
		}
	}

	if err := s.categoryRepo.IncrementCount(ctx, business.Category); err != nil {
		logger.Warn("Failed to increment category count", map[string]interface{}{
			"category": business.Category,
			"error":    err.Error(),
		})
	}

	logger.Info("Business submitted", map[string]interface{}{
		"business_id": business.ID,
		"slug":        business.Slug,
		"category":    business.Category,
		"has_logo":    business.LogoURL != "",
	})
	return business, nil
}

// attachLogo uploads the logo. Any failure leaves the business without one.
func (s *businessService) attachLogo(ctx context.Context, business *model.Business, logo *LogoFile) {
	if logo == nil || logo.Body == nil {
		return
	}
	if s.uploader == nil || !s.uploader.Enabled() {
		logger.Warn("Logo upload skipped, object storage not configured", map[string]interface{}{
			"name": business.Name,
		})
		return
	}

	file, err := s.uploader.UploadLogo(ctx, logo.ContentType, logo.Size, logo.Body)
	if err != nil {
		logger.Warn("Logo upload failed, creating business without logo", map[string]interface{}{
			"name":  business.Name,
			"error": err.Error(),
		})
		return
	}
	business.LogoURL = file.URL
	business.LogoPublicID = file.Key
}
