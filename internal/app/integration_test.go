package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/config"
	"github.com/ikkim/bizdir-backend/internal/app/controller"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	"github.com/ikkim/bizdir-backend/internal/db"
	"github.com/ikkim/bizdir-backend/internal/middleware"
	"github.com/ikkim/bizdir-backend/internal/router"
	"github.com/ikkim/bizdir-backend/internal/storage"
	"github.com/ikkim/bizdir-backend/pkg/courier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	// Setup database
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	require.NoError(t, db.SeedReferenceData(testDB))

	// Setup repositories
	businessRepo := repository.NewBusinessRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	cityRepo := repository.NewCityRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	// Setup services; no S3 bucket and no courier credentials
	logoStorage := storage.NewS3Storage(context.Background(), "ap-south-1", "", "", "", "")
	courierClient := courier.NewClient(courier.Config{}, nil)

	businessService := service.NewBusinessService(businessRepo, categoryRepo, logoStorage)
	reviewService := service.NewReviewService(reviewRepo, businessRepo)
	categoryService := service.NewCategoryService(categoryRepo, businessRepo)
	locationService := service.NewLocationService(courierClient, nil, cityRepo)
	searchService := service.NewSearchService(businessRepo, categoryRepo)
	sitemapService := service.NewSitemapService(businessRepo, "https://bizdir.example.com")

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	r := router.NewRouter(
		controller.NewBusinessController(businessService),
		controller.NewReviewController(reviewService),
		controller.NewCatalogController(categoryService, locationService, searchService, sitemapService),
		controller.NewHealthController(func(ctx context.Context) error { return db.Ping(ctx, testDB) }),
		middleware.NewMetrics(),
		cfg,
	)

	return &TestServer{Router: r.Setup(), DB: testDB}
}

func (s *TestServer) request(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func (s *TestServer) submitBusiness(t *testing.T, name string) map[string]interface{} {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"name":        name,
		"category":    "restaurants",
		"subCategory": "Desi",
		"province":    "Punjab",
		"city":        "Lahore",
		"area":        "Gulberg",
		"address":     "12 Main Boulevard, Gulberg",
		"phone":       "0300-1234567",
		"email":       "owner@example.com",
		"description": "Family restaurant serving karahi and BBQ since 1998",
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/business", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	code, response := s.request(t, req)
	require.Equal(t, http.StatusCreated, code)
	return response["business"].(map[string]interface{})
}

func TestIntegration_SubmitReviewBrowse(t *testing.T) {
	server := setupIntegrationTest(t)

	// Submit two listings with the same name
	first := server.submitBusiness(t, "Al-Noor Café #1")
	second := server.submitBusiness(t, "Al-Noor Café #1")
	assert.Equal(t, "al-noor-caf-1", first["slug"])
	assert.Equal(t, "al-noor-caf-1-1", second["slug"])
	assert.Equal(t, "pending", first["status"])
	assert.Nil(t, first["logoUrl"])

	businessID := fmt.Sprintf("%.0f", first["id"].(float64))

	// Review it three times
	for _, rating := range []int{5, 3, 4} {
		payload, _ := json.Marshal(map[string]interface{}{
			"businessId": businessID,
			"name":       "Bilal",
			"rating":     rating,
			"comment":    "Tasty food and friendly staff",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		code, _ := server.request(t, req)
		require.Equal(t, http.StatusCreated, code)
	}

	// The cached aggregate on the business matches the live one
	code, response := server.request(t, httptest.NewRequest(http.MethodGet, "/api/business?slug=al-noor-caf-1", nil))
	require.Equal(t, http.StatusOK, code)
	business := response["business"].(map[string]interface{})
	assert.Equal(t, float64(4), business["ratingAvg"])
	assert.Equal(t, float64(3), business["ratingCount"])

	code, response = server.request(t, httptest.NewRequest(http.MethodGet, "/api/reviews?businessId="+businessID, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{"ratingAvg": float64(4), "ratingCount": float64(3)}, response["aggregate"])

	// Browse by filter
	code, response = server.request(t, httptest.NewRequest(http.MethodGet, "/api/business?city=Lahore&q=karahi", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, response["items"].([]interface{}), 2)

	// Category count and sub categories follow submissions
	code, response = server.request(t, httptest.NewRequest(http.MethodGet, "/api/categories?slug=restaurants", nil))
	require.Equal(t, http.StatusOK, code)
	category := response["category"].(map[string]interface{})
	assert.Equal(t, float64(2), category["count"])
	assert.Equal(t, []interface{}{"Desi"}, category["subCategories"])

	// Search suggestions
	code, response = server.request(t, httptest.NewRequest(http.MethodGet, "/api/search?q=noor", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, response["businesses"].([]interface{}), 2)

	// Sitemap lists both slugs
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://bizdir.example.com/business/al-noor-caf-1<")
	assert.Contains(t, w.Body.String(), "https://bizdir.example.com/business/al-noor-caf-1-1<")
}

func TestIntegration_LookupsWithoutCourier(t *testing.T) {
	server := setupIntegrationTest(t)

	code, response := server.request(t, httptest.NewRequest(http.MethodGet, "/api/cities", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, service.SourceDatabase, response["source"])

	code, response = server.request(t, httptest.NewRequest(http.MethodGet, "/api/areas?cityId=lahore", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, service.SourceStatic, response["source"])
	assert.NotEmpty(t, response["items"])

	code, response = server.request(t, httptest.NewRequest(http.MethodGet, "/api/db-health", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", response["status"])
}
