package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFileName(t *testing.T) {
	day := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "storecart-error-2026-08-28.log", LogFileName("error", day))
	assert.Equal(t, "storecart-info-2026-08-28.log", LogFileName("info", day))
}

func TestLogDir(t *testing.T) {
	t.Run("defaults to logs", func(t *testing.T) {
		t.Setenv("LOG_DIR", "")
		assert.Equal(t, "logs", LogDir())
	})

	t.Run("honors LOG_DIR", func(t *testing.T) {
		t.Setenv("LOG_DIR", "/var/log/storecart")
		assert.Equal(t, "/var/log/storecart", LogDir())
	})
}
