package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/config"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/database"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{DBDriver: "sqlite", SQLitePath: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestDBHandlerPersistsErrorsOnStop(t *testing.T) {
	db := newTestDB(t)
	h := NewDBHandler(db)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("ignored")
	logger.Error("store failed",
		"user_id", "u-1",
		"app_id", "a-1",
		"error", errors.New("boom").Error(),
		"latency_ms", 12.6,
		"path", "/api/apps",
	)
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "store failed", entry.Message)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "req-1", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	require.NotNil(t, entry.AppID)
	assert.Equal(t, "a-1", *entry.AppID)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)

	var extra map[string]string
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "/api/apps", extra["path"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	var info, debug bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("detail")
	logger.Info("hello")

	assert.NotContains(t, info.String(), "detail")
	assert.Contains(t, info.String(), "hello")
	assert.Contains(t, debug.String(), "detail")
}

func TestPurge(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR", Message: "old"},
		{Timestamp: now, Level: "ERROR", Message: "new"},
	}).Error)

	deleted, err := Purge(db, now.Add(-retention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Message)
}

func TestStdoutHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewStdoutHandler(&buf, "production")).Debug("hidden")
	assert.Empty(t, buf.String())

	slog.New(NewStdoutHandler(&buf, "development")).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
