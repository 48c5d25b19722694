package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "/api", cfg.GetAPIBasePath())
	assert.Equal(t, 10*time.Minute, cfg.Holds.DefaultTTL)
	assert.Equal(t, time.Minute, cfg.Reaper.Interval)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN, "dbname=boxoffice_db")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_VERSION", "v2")
	t.Setenv("SEAT_HOLD_TTL", "5m")
	t.Setenv("SERVICE_FEE_RATE", "0.1")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REAPER_BATCH_SIZE", "not-a-number")

	cfg := Load()

	assert.Equal(t, "/api/v2", cfg.GetAPIBasePath())
	assert.Equal(t, 5*time.Minute, cfg.Holds.DefaultTTL)
	assert.InDelta(t, 0.1, cfg.Pricing.ServiceFeeRate, 1e-9)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 500, cfg.Reaper.BatchSize)
}
