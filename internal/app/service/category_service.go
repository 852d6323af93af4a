package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

const (
	DefaultCategoryLimit = 50
	MaxCategoryLimit     = 200
)

// CategoryDetail is a category with the sub categories its businesses use
type CategoryDetail struct {
	model.Category
	SubCategories []string `json:"subCategories"`
}

type CategoryService interface {
	List(ctx context.Context, q string, limit int) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryDetail, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	businessRepo repository.BusinessRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, businessRepo repository.BusinessRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		businessRepo: businessRepo,
	}
}

func ParseCategoryLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit < 1 {
		return DefaultCategoryLimit
	}
	if limit > MaxCategoryLimit {
		return MaxCategoryLimit
	}
	return limit
}

func (s *categoryService) List(ctx context.Context, q string, limit int) ([]model.Category, error) {
	if limit < 1 || limit > MaxCategoryLimit {
		limit = DefaultCategoryLimit
	}
	categories, err := s.categoryRepo.ListActive(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*CategoryDetail, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, strings.TrimSpace(slug))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	subCategories, err := s.businessRepo.SubCategories(ctx, category.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load sub categories: %w", err)
	}
	if subCategories == nil {
		subCategories = []string{}
	}

	return &CategoryDetail{Category: *category, SubCategories: subCategories}, nil
}
