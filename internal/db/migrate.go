package db

import (
	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/pkg/courier"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&model.Business{},
		&model.Category{},
		&model.City{},
		&model.Review{},
	}
}

// Migrate runs database migrations and seeds reference data
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedReferenceData(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

var defaultCategories = []model.Category{
	{Name: "Restaurants", Slug: "restaurants", Icon: "utensils", Description: "Restaurants, cafes and dhabas"},
	{Name: "Grocery", Slug: "grocery", Icon: "shopping-basket", Description: "Kiryana stores and supermarkets"},
	{Name: "Health & Medical", Slug: "health-medical", Icon: "stethoscope", Description: "Clinics, labs and pharmacies"},
	{Name: "Education", Slug: "education", Icon: "graduation-cap", Description: "Schools, academies and tutors"},
	{Name: "Automotive", Slug: "automotive", Icon: "car", Description: "Workshops, showrooms and parts"},
	{Name: "Beauty & Salon", Slug: "beauty-salon", Icon: "scissors", Description: "Salons, parlours and spas"},
	{Name: "Home Services", Slug: "home-services", Icon: "wrench", Description: "Plumbers, electricians and cleaners"},
	{Name: "Electronics", Slug: "electronics", Icon: "plug", Description: "Mobile, computer and appliance shops"},
	{Name: "Clothing & Fashion", Slug: "clothing-fashion", Icon: "shirt", Description: "Boutiques, tailors and footwear"},
	{Name: "Real Estate", Slug: "real-estate", Icon: "building", Description: "Agents, builders and developers"},
	{Name: "Travel & Hotels", Slug: "travel-hotels", Icon: "plane", Description: "Hotels, guest houses and travel agents"},
	{Name: "Professional Services", Slug: "professional-services", Icon: "briefcase", Description: "Lawyers, accountants and consultants"},
}

// SeedReferenceData inserts the default categories and cities. Existing rows
// (matched by slug) are left alone, so it is safe to run on every start.
func SeedReferenceData(conn *gorm.DB) error {
	logger.Info("Seeding reference data...")

	categories := make([]model.Category, len(defaultCategories))
	copy(categories, defaultCategories)
	for i := range categories {
		categories[i].IsActive = true
	}
	if err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&categories).Error; err != nil {
		return err
	}

	fallback := courier.FallbackCities()
	cities := make([]model.City, 0, len(fallback))
	for _, c := range fallback {
		cities = append(cities, model.City{
			Name:     c.Name,
			Slug:     c.Slug,
			Province: c.Province,
			Country:  "Pakistan",
			IsActive: true,
		})
	}
	if err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&cities).Error; err != nil {
		return err
	}

	logger.Info("Reference data seeded successfully", map[string]interface{}{
		"categories": len(categories),
		"cities":     len(cities),
	})
	return nil
}
