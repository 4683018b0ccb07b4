package logger

import (
	"testing"
)

func TestLogger(t *testing.T) {
	// Test default logger creation
	logger := NewDefault()
	if logger == nil {
		t.Fatal("Failed to create default logger")
	}

	// Test logging with structured fields
	logger.Info("test message",
		"endpoint", "https://example.test",
		"status_code", 200,
	)

	// Test with additional context
	contextLogger := logger.With(
		"requestID", "123",
	)
	contextLogger.Info("test with context")

	// Test different log levels
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")
}

func TestLoggerInvalidLevel(t *testing.T) {
	logger, err := New(&Config{
		Level:      "not-a-level",
		OutputPath: "stdout",
		Format:     "json",
	})
	if err != nil {
		t.Fatalf("New() with invalid level should fall back to info, got error: %v", err)
	}
	logger.Info("still logs at info")
}
