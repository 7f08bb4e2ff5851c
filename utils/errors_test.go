package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorClassification(t *testing.T) {
	t.Run("IsAppError distinguishes app errors from plain ones", func(t *testing.T) {
		assert.True(t, IsAppError(NotFoundError("gone")))
		assert.False(t, IsAppError(errors.New("gone")))
	})

	t.Run("GetAppError surfaces code and name", func(t *testing.T) {
		appErr := GetAppError(ConflictError("taken"))
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Equal(t, ErrNameConflict, appErr.Name)

		assert.Nil(t, GetAppError(errors.New("taken")))
	})

	t.Run("IsNotFoundError matches only 404s", func(t *testing.T) {
		assert.True(t, IsNotFoundError(NotFoundError("gone")))
		assert.False(t, IsNotFoundError(InvalidArgumentError("bad")))
		assert.False(t, IsNotFoundError(errors.New("gone")))
	})

	t.Run("IsInvalidPromoError matches both promo failures", func(t *testing.T) {
		assert.True(t, IsInvalidPromoError(InvalidPromoError()))
		assert.True(t, IsInvalidPromoError(InvalidPromoMinPurchaseError()))
		assert.False(t, IsInvalidPromoError(NotFoundError("gone")))
	})
}

func TestWrapError(t *testing.T) {
	t.Run("keeps the cause reachable through errors.Is", func(t *testing.T) {
		cause := errors.New("connection refused")
		wrapped := WrapError(cause, "failed to reach database")

		require.Error(t, wrapped)
		assert.True(t, errors.Is(wrapped, cause))
		assert.Contains(t, wrapped.Error(), "failed to reach database")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "context"))
	})

	t.Run("app errors unwrap to their cause", func(t *testing.T) {
		cause := errors.New("duplicate key")
		appErr := StorageError("failed to save", cause)
		assert.True(t, errors.Is(appErr, cause))
	})
}
