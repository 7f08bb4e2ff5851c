package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeString("<b>bold</b>"))
	assert.NotContains(t, SanitizeString(`<script>alert("x")</script>`), "<script>")
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.domain.org"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone(""))
	assert.True(t, ValidatePhone("+14155551234"))
	assert.True(t, ValidatePhone("14155551234"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("+0123"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Sup3rSecret"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoNumbersHere"))
}

func TestValidatePromoValue(t *testing.T) {
	assert.NoError(t, ValidatePromoValue("percentage", 100))
	assert.NoError(t, ValidatePromoValue("percentage", 12.5))
	assert.Error(t, ValidatePromoValue("percentage", 100.01))
	assert.Error(t, ValidatePromoValue("percentage", -1))

	// Fixed promos have no upper bound, only non-negativity.
	assert.NoError(t, ValidatePromoValue("fixed", 5000))
	assert.Error(t, ValidatePromoValue("fixed", -5))
}
