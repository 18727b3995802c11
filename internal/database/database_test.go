package database

import (
	"bytes"
	"testing"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/config"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.Config{DBDriver: "sqlite", SQLitePath: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "apphub.db?_pragma=foreign_keys(1)", sqliteDSN("apphub.db"))
	assert.Equal(t, "file::memory:?cache=shared&_pragma=foreign_keys(1)", sqliteDSN("file::memory:?cache=shared"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(1)", sqliteDSN("x.db?_pragma=foreign_keys(1)"))
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	db := openMemory(t)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	orphan := models.App{Name: "orphan", URL: "https://orphan", IsHealthy: true, CreatorID: uuid.New()}
	assert.ErrorIs(t, db.Create(&orphan).Error, gorm.ErrForeignKeyViolated)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestLoggerSkipsRecordNotFound(t *testing.T) {
	db := openMemory(t)
	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newLogger(&buf)})

	err := quiet.Where("id = ?", uuid.New()).Take(&models.User{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	err = quiet.Table("missing_table").Take(&models.User{}).Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}
