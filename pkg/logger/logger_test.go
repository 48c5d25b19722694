package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewWithOptions_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: "info", Format: "json", Output: &buf})

	log.Debug("dropped")
	log.WithComponent("reaper").WithError(errors.New("db down")).Warn("Hold sweep failed")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Hold sweep failed", record["msg"])
	assert.Equal(t, "reaper", record["component"])
	assert.Equal(t, "db down", record["error"])
}

func TestLogOrderCommitted(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: "info", Format: "json", Output: &buf})

	log.LogOrderCommitted(context.Background(), "order-1", "event-1", "user-1", 3)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Order Committed", record["msg"])
	assert.Equal(t, "order-1", record["order_id"])
	assert.EqualValues(t, 3, record["seats"])
}

func TestPrintfTagsGorm(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Format: "text", Output: &buf})

	log.Printf("[%.3fms] %s", 1.5, "SELECT 1")

	assert.Contains(t, buf.String(), "SELECT 1")
	assert.Contains(t, buf.String(), "component=gorm")
}
