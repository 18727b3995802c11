package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/config"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/database"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/fingerprint"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
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

func newUser(t *testing.T, db *gorm.DB, userAgent string) session.Requester {
	t.Helper()
	res, err := NewIdentityService(db).Resolve(context.Background(), fingerprint.Signals{UserAgent: userAgent})
	require.NoError(t, err)
	return session.For(res.UserID)
}

func newApp(t *testing.T, svc *AppService, r session.Requester, name string, public bool, tags ...string) *models.App {
	t.Helper()
	app, err := svc.Create(context.Background(), r, &dto.CreateAppRequest{
		Name:     name,
		URL:      "https://" + name + ".example.com",
		IsPublic: &public,
		Tags:     tags,
	})
	require.NoError(t, err)
	return app
}
