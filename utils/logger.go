package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// One file per level per day, e.g. logs/storecart-error-2026-08-28.log.
// The analyzer script under scripts/ reads the same naming.
const logDateLayout = "2006-01-02"

var logLevels = []string{"info", "error", "debug"}

var loggers = map[string]*log.Logger{}

// LogDir returns the directory log files are written to, LOG_DIR or ./logs.
func LogDir() string {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir
	}
	return "logs"
}

// LogFileName returns the file name for one level on a given day.
func LogFileName(level string, day time.Time) string {
	return fmt.Sprintf("storecart-%s-%s.log", level, day.Format(logDateLayout))
}

func openLevel(dir, level string) (*log.Logger, error) {
	f, err := os.OpenFile(
		filepath.Join(dir, LogFileName(level, time.Now())),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s log file: %v", level, err)
	}
	return log.New(f, strings.ToUpper(level)+": ", log.Ldate|log.Ltime|log.Lshortfile), nil
}

// InitLogger opens today's per-level log files. Logging before InitLogger
// has run is a no-op, so packages may log unconditionally.
func InitLogger() error {
	dir := LogDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}
	for _, level := range logLevels {
		logger, err := openLevel(dir, level)
		if err != nil {
			return err
		}
		loggers[level] = logger
	}
	return nil
}

// logAt writes at calldepth 3 so Lshortfile names the LogX caller, not
// this file.
func logAt(level, format string, v ...interface{}) {
	if logger := loggers[level]; logger != nil {
		logger.Output(3, fmt.Sprintf(format, v...))
	}
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	logAt("info", format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	logAt("error", format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	logAt("debug", format, v...)
}

// LogRequest logs one served HTTP request.
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	logAt("info", "Request: %s %s from %s - Status: %d - Duration: %v", method, path, ip, status, duration)
}

// LogErrorWithStack logs an error with the stack trace that produced it.
func LogErrorWithStack(err error, stack []byte) {
	logAt("error", "Error: %v\nStack Trace:\n%s", err, stack)
}
