package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionCurrentAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sub := Subscription{StartDate: start, EndDate: end, Status: SubscriptionActive}

	t.Run("inside the term", func(t *testing.T) {
		assert.True(t, sub.CurrentAt(start.AddDate(0, 0, 10)))
	})

	t.Run("start is inclusive, end is exclusive", func(t *testing.T) {
		assert.True(t, sub.CurrentAt(start))
		assert.False(t, sub.CurrentAt(end))
	})

	t.Run("cancelled subscription is never current", func(t *testing.T) {
		cancelled := sub
		cancelled.Status = SubscriptionCancelled
		assert.False(t, cancelled.CurrentAt(start.AddDate(0, 0, 10)))
	})
}

func TestSubscriptionTermEnd(t *testing.T) {
	start := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	t.Run("monthly", func(t *testing.T) {
		assert.Equal(t, start.AddDate(0, 1, 0), SubscriptionTermEnd(start, BillingCycleMonthly))
	})

	t.Run("yearly", func(t *testing.T) {
		assert.Equal(t, start.AddDate(1, 0, 0), SubscriptionTermEnd(start, BillingCycleYearly))
	})
}
