package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordResponse(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, StandardResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	w, body := recordResponse(t, func(c *gin.Context) {
		Success(c, "done", gin.H{"id": 1})
	})

	assert.Equal(t, 200, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "done", body.Message)
	assert.Equal(t, 200, body.Status)
	assert.Empty(t, body.Errors)
	assert.Nil(t, body.Pagination)
}

func TestSuccessWithPaginationEnvelope(t *testing.T) {
	meta := map[string]interface{}{"page": 1, "totalDocuments": 3}
	_, body := recordResponse(t, func(c *gin.Context) {
		SuccessWithPagination(c, "listed", gin.H{"items": []int{1, 2, 3}}, meta)
	})

	assert.True(t, body.Success)
	assert.NotNil(t, body.Pagination)
}

func TestSendAppError(t *testing.T) {
	t.Run("app error keeps its code and name", func(t *testing.T) {
		w, body := recordResponse(t, func(c *gin.Context) {
			SendAppError(c, InvalidPromoError())
		})

		assert.Equal(t, 400, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, "The promo code is invalid.", body.Message)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, ErrNameInvalidPromo, body.Errors[0].Name)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		w, _ := recordResponse(t, func(c *gin.Context) {
			SendAppError(c, NotFoundError("Cart not found"))
		})
		assert.Equal(t, 404, w.Code)
	})

	t.Run("unknown error collapses to 500", func(t *testing.T) {
		w, body := recordResponse(t, func(c *gin.Context) {
			SendAppError(c, errors.New("pq: connection reset"))
		})

		assert.Equal(t, 500, w.Code)
		// Internal details never leak into the envelope.
		assert.NotContains(t, body.Message, "pq:")
	})
}

func TestValidationErrorsEnvelope(t *testing.T) {
	w, body := recordResponse(t, func(c *gin.Context) {
		ValidationErrors(c, FieldValidationErrors{
			{Field: "email", Message: "invalid format"},
			{Field: "password", Message: "too short"},
		})
	})

	assert.Equal(t, 422, w.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "email", body.Errors[0].Field)
	assert.Equal(t, "password", body.Errors[1].Field)
}
