package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/pkg/courier"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"github.com/ikkim/bizdir-backend/pkg/util"
)

// Where a lookup response came from
const (
	SourceCache    = "cache"
	SourceCourier  = "courier"
	SourceDatabase = "database"
	SourceStatic   = "static"
)

const citiesCacheKey = "cities"

func areasCacheKey(cityID string) string {
	return "areas:" + strings.ToLower(cityID)
}

// PlaceSource is the upstream city/area provider
type PlaceSource interface {
	Configured() bool
	Cities(ctx context.Context) ([]courier.Place, error)
	Areas(ctx context.Context, cityID string) ([]courier.Place, error)
}

// LookupCache caches upstream lookups; implementations must tolerate a nil receiver
type LookupCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{})
	Delete(ctx context.Context, key string)
}

type PlaceList struct {
	Items  []courier.Place `json:"items"`
	Source string          `json:"source"`
}

type ProvinceList struct {
	Items  []string `json:"items"`
	Source string   `json:"source"`
}

type LocationService interface {
	Cities(ctx context.Context) *PlaceList
	Provinces(ctx context.Context) *ProvinceList
	Areas(ctx context.Context, cityID string) (*PlaceList, error)
	SyncCities(ctx context.Context) (int, error)
}

type locationService struct {
	source   PlaceSource
	cache    LookupCache
	cityRepo repository.CityRepository
}

func NewLocationService(source PlaceSource, cache LookupCache, cityRepo repository.CityRepository) LocationService {
	return &locationService{
		source:   source,
		cache:    cache,
		cityRepo: cityRepo,
	}
}

// Cities never fails: cache, then upstream, then stored cities, then the
// bundled list.
func (s *locationService) Cities(ctx context.Context) *PlaceList {
	var cached []courier.Place
	if s.cache != nil && s.cache.GetJSON(ctx, citiesCacheKey, &cached) && len(cached) > 0 {
		return &PlaceList{Items: cached, Source: SourceCache}
	}

	if places, ok := s.fromUpstream(ctx, "cities", func() ([]courier.Place, error) {
		return s.source.Cities(ctx)
	}); ok {
		if s.cache != nil {
			s.cache.SetJSON(ctx, citiesCacheKey, places)
		}
		return &PlaceList{Items: places, Source: SourceCourier}
	}

	stored, err := s.cityRepo.ListActive(ctx)
	if err != nil {
		logger.Warn("Failed to load stored cities", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if len(stored) > 0 {
		places := make([]courier.Place, 0, len(stored))
		for _, city := range stored {
			places = append(places, courier.Place{ID: city.Slug, Name: city.Name})
		}
		return &PlaceList{Items: places, Source: SourceDatabase}
	}

	return &PlaceList{Items: courier.FallbackCityPlaces(), Source: SourceStatic}
}

func (s *locationService) Provinces(ctx context.Context) *ProvinceList {
	provinces, err := s.cityRepo.Provinces(ctx)
	if err != nil {
		logger.Warn("Failed to load provinces", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if len(provinces) > 0 {
		return &ProvinceList{Items: provinces, Source: SourceDatabase}
	}
	return &ProvinceList{Items: courier.FallbackProvinces(), Source: SourceStatic}
}

// Areas resolves the areas of one city. Unknown cities yield an empty list.
func (s *locationService) Areas(ctx context.Context, cityID string) (*PlaceList, error) {
	cityID = strings.TrimSpace(cityID)
	if cityID == "" {
		return nil, &InvalidInputError{Fields: map[string]string{"cityId": "This field is required"}}
	}

	key := areasCacheKey(cityID)
	var cached []courier.Place
	if s.cache != nil && s.cache.GetJSON(ctx, key, &cached) && len(cached) > 0 {
		return &PlaceList{Items: cached, Source: SourceCache}, nil
	}

	if places, ok := s.fromUpstream(ctx, "areas", func() ([]courier.Place, error) {
		return s.source.Areas(ctx, cityID)
	}); ok {
		if s.cache != nil {
			s.cache.SetJSON(ctx, key, places)
		}
		return &PlaceList{Items: places, Source: SourceCourier}, nil
	}

	return &PlaceList{Items: courier.FallbackAreaPlaces(cityID), Source: SourceStatic}, nil
}

// fromUpstream runs one upstream call. ok is false when the upstream is not
// configured, fails, or returns nothing usable.
func (s *locationService) fromUpstream(ctx context.Context, what string, call func() ([]courier.Place, error)) ([]courier.Place, bool) {
	if s.source == nil || !s.source.Configured() {
		return nil, false
	}

	places, err := call()
	if err != nil {
		logger.Warn("Courier lookup failed, using fallback", map[string]interface{}{
			"lookup": what,
			"error":  err.Error(),
		})
		return nil, false
	}
	if len(places) == 0 {
		logger.Warn("Courier lookup returned no usable records, using fallback", map[string]interface{}{
			"lookup": what,
		})
		return nil, false
	}
	return places, true
}

// SyncCities copies the upstream city list into the cities table and drops
// the cached list so the next read sees fresh data.
func (s *locationService) SyncCities(ctx context.Context) (int, error) {
	if s.source == nil || !s.source.Configured() {
		return 0, courier.ErrNotConfigured
	}

	places, err := s.source.Cities(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch courier cities: %w", err)
	}

	seen := make(map[string]bool, len(places))
	cities := make([]model.City, 0, len(places))
	for _, place := range places {
		slug := util.Slugify(place.Name)
		if seen[slug] {
			continue
		}
		seen[slug] = true
		cities = append(cities, model.City{
			Name:     place.Name,
			Slug:     slug,
			Country:  "Pakistan",
			IsActive: true,
		})
	}

	if err := s.cityRepo.Upsert(ctx, cities); err != nil {
		return 0, fmt.Errorf("failed to store cities: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(ctx, citiesCacheKey)
	}

	return len(cities), nil
}
