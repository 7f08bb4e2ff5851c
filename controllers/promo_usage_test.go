package controllers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openControllerTestDB(t *testing.T, schemas ...interface{}) *gorm.DB {
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

	require.NoError(t, db.AutoMigrate(schemas...))
	return db
}

func promoUsageCount(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var promo models.PromoCode
	require.NoError(t, db.First(&promo, id).Error)
	return promo.UsageCount
}

func TestConsumePromoUsage(t *testing.T) {
	newPromo := func(t *testing.T, db *gorm.DB, limit int) models.PromoCode {
		promo := models.PromoCode{
			Code:         "SAVE10",
			Type:         models.PromoTypePercentage,
			Value:        10,
			ValidFrom:    time.Now().Add(-time.Hour),
			ValidTo:      time.Now().Add(time.Hour),
			UsageLimit:   limit,
			StorefrontID: 1,
		}
		require.NoError(t, db.Create(&promo).Error)
		return promo
	}

	t.Run("increments exactly once per successful application", func(t *testing.T) {
		db := openControllerTestDB(t, &models.PromoCode{})
		promo := newPromo(t, db, 2)

		require.NoError(t, consumePromoUsage(db, promo.ID))
		assert.Equal(t, 1, promoUsageCount(t, db, promo.ID))

		require.NoError(t, consumePromoUsage(db, promo.ID))
		assert.Equal(t, 2, promoUsageCount(t, db, promo.ID))
	})

	t.Run("refuses the application past the limit", func(t *testing.T) {
		db := openControllerTestDB(t, &models.PromoCode{})
		promo := newPromo(t, db, 1)

		require.NoError(t, consumePromoUsage(db, promo.ID))

		err := consumePromoUsage(db, promo.ID)
		require.Error(t, err)
		assert.True(t, utils.IsInvalidPromoError(err))
		assert.Equal(t, 1, promoUsageCount(t, db, promo.ID))
	})

	t.Run("zero limit never exhausts", func(t *testing.T) {
		db := openControllerTestDB(t, &models.PromoCode{})
		promo := newPromo(t, db, 0)

		for i := 0; i < 3; i++ {
			require.NoError(t, consumePromoUsage(db, promo.ID))
		}
		assert.Equal(t, 3, promoUsageCount(t, db, promo.ID))
	})
}
