package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
)

const (
	minSearchLength     = 2
	searchBusinessLimit = 6
	searchCategoryLimit = 5
)

type SearchResult struct {
	Businesses []model.Business `json:"businesses"`
	Categories []model.Category `json:"categories"`
}

type SearchService interface {
	Suggest(ctx context.Context, q string) (*SearchResult, error)
}

type searchService struct {
	businessRepo repository.BusinessRepository
	categoryRepo repository.CategoryRepository
}

func NewSearchService(businessRepo repository.BusinessRepository, categoryRepo repository.CategoryRepository) SearchService {
	return &searchService{
		businessRepo: businessRepo,
		categoryRepo: categoryRepo,
	}
}

// Suggest returns a handful of businesses and categories matching q. Terms
// shorter than two characters return nothing.
func (s *searchService) Suggest(ctx context.Context, q string) (*SearchResult, error) {
	result := &SearchResult{
		Businesses: []model.Business{},
		Categories: []model.Category{},
	}

	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < minSearchLength {
		return result, nil
	}

	businesses, _, err := s.businessRepo.List(ctx, repository.BusinessQuery{Q: q}, 0, searchBusinessLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search businesses: %w", err)
	}
	categories, err := s.categoryRepo.ListActive(ctx, q, searchCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}

	result.Businesses = businesses
	result.Categories = categories
	return result, nil
}
