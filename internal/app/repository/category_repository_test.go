package repository

import (
	"context"
	"testing"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/ikkim/bizdir-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCategoryTest(t *testing.T) (*gorm.DB, CategoryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categories := []model.Category{
		{Name: "Restaurants", Slug: "restaurants", Count: 10, IsActive: true},
		{Name: "Grocery", Slug: "grocery", Count: 3, IsActive: true},
		{Name: "Automotive", Slug: "automotive", Count: 3, IsActive: true},
		{Name: "Retired", Slug: "retired", Count: 99, IsActive: true},
	}
	require.NoError(t, testDB.Create(&categories).Error)
	// is_active defaults to true on insert, so deactivate explicitly
	require.NoError(t, testDB.Model(&model.Category{}).Where("slug = ?", "retired").Update("is_active", false).Error)

	return testDB, NewCategoryRepository(testDB)
}

func TestCategoryRepository_ListActive(t *testing.T) {
	_, repo := setupCategoryTest(t)
	ctx := context.Background()

	all, err := repo.ListActive(ctx, "", 50)
	require.NoError(t, err)
	var slugs []string
	for _, c := range all {
		slugs = append(slugs, c.Slug)
	}
	assert.Equal(t, []string{"restaurants", "automotive", "grocery"}, slugs)

	limited, err := repo.ListActive(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "restaurants", limited[0].Slug)

	filtered, err := repo.ListActive(ctx, "GROC", 50)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "grocery", filtered[0].Slug)

	none, err := repo.ListActive(ctx, "retired", 50)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCategoryRepository_IncrementCount(t *testing.T) {
	_, repo := setupCategoryTest(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementCount(ctx, "grocery"))
	require.NoError(t, repo.IncrementCount(ctx, "grocery"))

	category, err := repo.FindBySlug(ctx, "grocery")
	require.NoError(t, err)
	assert.Equal(t, int64(5), category.Count)

	assert.ErrorIs(t, repo.IncrementCount(ctx, "unknown"), gorm.ErrRecordNotFound)

	_, err = repo.FindBySlug(ctx, "unknown")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
