package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// shelfItem is a minimal model for exercising the generic repository
// against a real database.
type shelfItem struct {
	gorm.Model
	Name         string
	StorefrontID uint
	Price        float64
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory database exists per connection, so the pool must not
	// grow past one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&shelfItem{}))
	return db
}

func seedShelf(t *testing.T, db *gorm.DB) []shelfItem {
	t.Helper()
	items := []shelfItem{
		{Name: "Atlas", StorefrontID: 1, Price: 30},
		{Name: "Compass", StorefrontID: 1, Price: 10},
		{Name: "Binoculars", StorefrontID: 1, Price: 20},
		{Name: "Dinghy", StorefrontID: 2, Price: 99},
	}
	require.NoError(t, db.Create(&items).Error)
	return items
}

func TestPaginateAgainstDB(t *testing.T) {
	db := openTestDB(t)
	seedShelf(t, db)
	repo := New[shelfItem](db)

	t.Run("filters and pages with meta", func(t *testing.T) {
		page, err := repo.Paginate(Filter{"storefront_id": 1}, PageOptions{
			Page:  1,
			Limit: 2,
			Sort:  "price asc",
		})
		require.NoError(t, err)

		require.Len(t, page.Data, 2)
		assert.Equal(t, "Compass", page.Data[0].Name)
		assert.Equal(t, "Binoculars", page.Data[1].Name)
		assert.Equal(t, int64(3), page.Meta.TotalDocuments)
		assert.Equal(t, 2, page.Meta.TotalPages)
		require.NotNil(t, page.Meta.NextPage)
		assert.Equal(t, 2, *page.Meta.NextPage)
		assert.Nil(t, page.Meta.PreviousPage)
	})

	t.Run("soft-deleted rows are excluded", func(t *testing.T) {
		repo := New[shelfItem](openTestDB(t))
		items := seedShelf(t, repo.DB())
		require.NoError(t, repo.Delete(items[0].ID))

		page, err := repo.Paginate(Filter{"storefront_id": 1}, PageOptions{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Meta.TotalDocuments)
		for _, item := range page.Data {
			assert.NotEqual(t, items[0].ID, item.ID)
		}
	})
}

func TestDropdownProjection(t *testing.T) {
	db := openTestDB(t)
	items := seedShelf(t, db)
	repo := New[shelfItem](db)

	t.Run("projects id and label, sorted by label", func(t *testing.T) {
		page, err := repo.Dropdown(Filter{"storefront_id": 1}, "", PageOptions{Page: 1, Limit: 10})
		require.NoError(t, err)

		require.Len(t, page.Data, 3)
		assert.Equal(t, "Atlas", page.Data[0].Label)
		assert.Equal(t, "Binoculars", page.Data[1].Label)
		assert.Equal(t, "Compass", page.Data[2].Label)
		assert.Equal(t, items[0].ID, page.Data[0].Value)
		assert.Equal(t, int64(3), page.Meta.TotalDocuments)
	})

	t.Run("label field is selectable", func(t *testing.T) {
		page, err := repo.Dropdown(Filter{"storefront_id": 2}, "name", PageOptions{Page: 1, Limit: 10})
		require.NoError(t, err)

		require.Len(t, page.Data, 1)
		assert.Equal(t, "Dinghy", page.Data[0].Label)
		assert.Equal(t, items[3].ID, page.Data[0].Value)
	})
}

func TestPaginatedAggregateAgainstDB(t *testing.T) {
	db := openTestDB(t)
	seedShelf(t, db)
	repo := New[shelfItem](db)

	type row struct {
		Label  string
		Amount float64
	}

	var rows []row
	meta, err := repo.PaginatedAggregate(&rows, 1, 2,
		SelectExpr("name AS label, price AS amount"),
		Where("storefront_id = ?", 1),
		OrderBy("price ASC"),
	)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Compass", rows[0].Label)
	assert.Equal(t, 10.0, rows[0].Amount)
	assert.Equal(t, int64(3), meta.TotalDocuments)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 2, *meta.NextPage)
}

func TestWithTxSharesTransaction(t *testing.T) {
	db := openTestDB(t)
	repo := New[shelfItem](db)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.WithTx(tx).Create(&shelfItem{Name: "Sextant", StorefrontID: 1}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	// The rollback must have taken the create with it.
	count, err := repo.Count(Filter{"name": "Sextant"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
