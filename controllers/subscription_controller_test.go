package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func authedJSONContext(t *testing.T, user models.User, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user", user)
	return c, w
}

func subscriptionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openControllerTestDB(t, &models.Plan{}, &models.PlanFeature{}, &models.Subscription{})
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func seedPlan(t *testing.T, db *gorm.DB, active bool) models.Plan {
	t.Helper()
	plan := models.Plan{
		Name:         "Starter",
		Description:  "Entry tier",
		PriceAmount:  9.99,
		Currency:     "USD",
		BillingCycle: models.BillingCycleMonthly,
		IsActive:     active,
	}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

func TestSubscribe(t *testing.T) {
	user := models.User{Model: gorm.Model{ID: 7}, Name: "Shopper", Email: "shopper@example.com"}

	t.Run("creates an active subscription for one term", func(t *testing.T) {
		db := subscriptionTestDB(t)
		plan := seedPlan(t, db, true)

		c, w := authedJSONContext(t, user, http.MethodPost, "/v1/user/subscribe",
			SubscribeRequest{PlanID: plan.ID})
		Subscribe(c)

		require.Equal(t, http.StatusCreated, w.Code)

		var sub models.Subscription
		require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
		assert.Equal(t, plan.ID, sub.PlanID)
		assert.Equal(t, models.SubscriptionActive, sub.Status)
		assert.Equal(t, models.SubscriptionTermEnd(sub.StartDate, plan.BillingCycle), sub.EndDate)
	})

	t.Run("rejects a second active subscription", func(t *testing.T) {
		db := subscriptionTestDB(t)
		plan := seedPlan(t, db, true)

		c, w := authedJSONContext(t, user, http.MethodPost, "/v1/user/subscribe",
			SubscribeRequest{PlanID: plan.ID})
		Subscribe(c)
		require.Equal(t, http.StatusCreated, w.Code)

		c, w = authedJSONContext(t, user, http.MethodPost, "/v1/user/subscribe",
			SubscribeRequest{PlanID: plan.ID})
		Subscribe(c)
		assert.Equal(t, http.StatusConflict, w.Code)

		var count int64
		require.NoError(t, db.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("inactive plan reads as not found", func(t *testing.T) {
		db := subscriptionTestDB(t)
		plan := seedPlan(t, db, false)

		c, w := authedJSONContext(t, user, http.MethodPost, "/v1/user/subscribe",
			SubscribeRequest{PlanID: plan.ID})
		Subscribe(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetMySubscription(t *testing.T) {
	user := models.User{Model: gorm.Model{ID: 7}, Name: "Shopper", Email: "shopper@example.com"}

	t.Run("returns the active subscription with its plan", func(t *testing.T) {
		db := subscriptionTestDB(t)
		plan := seedPlan(t, db, true)
		now := time.Now()
		require.NoError(t, db.Create(&models.Subscription{
			UserID:    user.ID,
			PlanID:    plan.ID,
			StartDate: now,
			EndDate:   models.SubscriptionTermEnd(now, plan.BillingCycle),
			Status:    models.SubscriptionActive,
		}).Error)

		c, w := authedJSONContext(t, user, http.MethodGet, "/v1/user/my-subscription", nil)
		GetMySubscription(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), plan.Name)
	})

	t.Run("no active subscription reads as null", func(t *testing.T) {
		subscriptionTestDB(t)

		c, w := authedJSONContext(t, user, http.MethodGet, "/v1/user/my-subscription", nil)
		GetMySubscription(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"subscription":null`)
	})
}

func TestCancelSubscription(t *testing.T) {
	user := models.User{Model: gorm.Model{ID: 7}, Name: "Shopper", Email: "shopper@example.com"}

	t.Run("cancels the active subscription and stops auto-renew", func(t *testing.T) {
		db := subscriptionTestDB(t)
		plan := seedPlan(t, db, true)
		now := time.Now()
		sub := models.Subscription{
			UserID:    user.ID,
			PlanID:    plan.ID,
			StartDate: now,
			EndDate:   models.SubscriptionTermEnd(now, plan.BillingCycle),
			Status:    models.SubscriptionActive,
			AutoRenew: true,
		}
		require.NoError(t, db.Create(&sub).Error)

		c, w := authedJSONContext(t, user, http.MethodPut, "/v1/user/cancel-subscription", nil)
		CancelSubscription(c)

		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, db.First(&sub, sub.ID).Error)
		assert.Equal(t, models.SubscriptionCancelled, sub.Status)
		assert.False(t, sub.AutoRenew)
	})

	t.Run("second cancel finds nothing active", func(t *testing.T) {
		subscriptionTestDB(t)

		c, w := authedJSONContext(t, user, http.MethodPut, "/v1/user/cancel-subscription", nil)
		CancelSubscription(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
