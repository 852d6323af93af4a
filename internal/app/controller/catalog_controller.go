package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	apperrors "github.com/ikkim/bizdir-backend/internal/errors"
)

// CatalogController serves the read-only browse endpoints: categories,
// lookups, search suggestions and the sitemap.
type CatalogController struct {
	categoryService service.CategoryService
	locationService service.LocationService
	searchService   service.SearchService
	sitemapService  service.SitemapService
}

func NewCatalogController(
	categoryService service.CategoryService,
	locationService service.LocationService,
	searchService service.SearchService,
	sitemapService service.SitemapService,
) *CatalogController {
	return &CatalogController{
		categoryService: categoryService,
		locationService: locationService,
		searchService:   searchService,
		sitemapService:  sitemapService,
	}
}

// GetCategories lists categories, or returns one with its sub categories when slug is set
// GET /api/categories
func (ctrl *CatalogController) GetCategories(c *gin.Context) {
	if slug := c.Query("slug"); slug != "" {
		category, err := ctrl.categoryService.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotFound) {
				apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
				return
			}
			respondWithServiceError(c, err, "get category")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"category": category,
		})
		return
	}

	limit := service.ParseCategoryLimit(c.Query("limit"))
	categories, err := ctrl.categoryService.List(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondWithServiceError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": categories,
	})
}

// GET /api/cities
func (ctrl *CatalogController) GetCities(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.locationService.Cities(c.Request.Context()))
}

// GET /api/provinces
func (ctrl *CatalogController) GetProvinces(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.locationService.Provinces(c.Request.Context()))
}

// GET /api/areas?cityId=
func (ctrl *CatalogController) GetAreas(c *gin.Context) {
	areas, err := ctrl.locationService.Areas(c.Request.Context(), c.Query("cityId"))
	if err != nil {
		respondWithServiceError(c, err, "list areas")
		return
	}
	c.JSON(http.StatusOK, areas)
}

// GET /api/search?q=
func (ctrl *CatalogController) Search(c *gin.Context) {
	result, err := ctrl.searchService.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithServiceError(c, err, "search")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/sitemap.xml
func (ctrl *CatalogController) Sitemap(c *gin.Context) {
	body, err := ctrl.sitemapService.Generate(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "generate sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
