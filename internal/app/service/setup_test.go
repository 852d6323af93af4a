package service

import (
	"testing"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testRepos struct {
	db         *gorm.DB
	businesses repository.BusinessRepository
	categories repository.CategoryRepository
	cities     repository.CityRepository
	reviews    repository.ReviewRepository
}

func setupServiceTest(t *testing.T) testRepos {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testRepos{
		db:         testDB,
		businesses: repository.NewBusinessRepository(testDB),
		categories: repository.NewCategoryRepository(testDB),
		cities:     repository.NewCityRepository(testDB),
		reviews:    repository.NewReviewRepository(testDB),
	}
}

func seedCategory(t *testing.T, testDB *gorm.DB, name, slug string) {
	require.NoError(t, testDB.Create(&model.Category{Name: name, Slug: slug, IsActive: true}).Error)
}
