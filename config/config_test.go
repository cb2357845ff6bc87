package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	for _, k := range []string{"DATABASE_URL", "PORT", "WHATSAPP_CHANNEL_ID", "DEFAULT_PIX_KEY", "STORAGE_PROVIDER",
		"S3_BUCKET", "RECEIPT_MAX_BYTES", "EVENT_CACHE_TTL", "MAILER_PROVIDER", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDBUrl, cfg.DBUrl)
	assert.Equal(t, DefaultWhatsAppChannelID, cfg.WhatsAppChannelID)
	assert.Equal(t, DefaultPixKey, cfg.DefaultPixKey)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, "event-banners", cfg.Storage.Bucket)
	assert.Equal(t, int64(DefaultReceiptMaxBytes), cfg.ReceiptMaxBytes)
	assert.Equal(t, DefaultEventCacheTTL, cfg.EventCacheTTL)
	assert.Equal(t, "noop", cfg.Mailer.Provider)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("RECEIPT_MAX_BYTES", "2048")
	t.Setenv("EVENT_CACHE_TTL", "5m")
	t.Setenv("RECEIPT_ALLOWED_EXTENSIONS", "pdf, png ,")
	t.Setenv("STORAGE_PROVIDER", "s3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, int64(2048), cfg.ReceiptMaxBytes)
	assert.Equal(t, 5*time.Minute, cfg.EventCacheTTL)
	assert.Equal(t, []string{"pdf", "png"}, cfg.ReceiptAllowedExtensions)
	assert.Equal(t, "s3", cfg.Storage.Provider)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("RECEIPT_MAX_BYTES", "lots")
	t.Setenv("EVENT_CACHE_TTL", "-1s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultReceiptMaxBytes), cfg.ReceiptMaxBytes)
	assert.Equal(t, DefaultEventCacheTTL, cfg.EventCacheTTL)
}

func TestConfig_EventLocation(t *testing.T) {
	cfg := &Config{EventTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.EventLocation())

	cfg.EventTimezone = "UTC"
	assert.Equal(t, "UTC", cfg.EventLocation().String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerTo_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "production", "info")
	logger.Debug("hidden")
	logger.Info("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, "eventregistration", rec["service"])
}
