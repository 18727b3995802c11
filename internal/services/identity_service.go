package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/fingerprint"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolution is the User a fingerprint resolved to.
type Resolution struct {
	UserID      uuid.UUID
	Fingerprint string
	IsNew       bool
}

type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Resolve maps client signals to a User, creating one on first sight.
// A fingerprint row left without a User is re-attached to the new User
// instead of being duplicated.
func (s *IdentityService) Resolve(ctx context.Context, signals fingerprint.Signals) (*Resolution, error) {
	hash := fingerprint.Hash(signals)

	res, err := s.resolve(ctx, hash, signals)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a concurrent first contact; the winner's User should now exist.
		res, err = s.lookup(ctx, hash)
		if err != nil {
			slog.Warn("identity conflict", "fingerprint", hash, "error", err)
			metrics.RecordIdentity("conflict")
			return nil, ErrIdentityConflict
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	if res.IsNew {
		metrics.RecordIdentity("new")
	} else {
		metrics.RecordIdentity("existing")
	}
	return res, nil
}

func (s *IdentityService) resolve(ctx context.Context, hash string, signals fingerprint.Signals) (*Resolution, error) {
	var res *Resolution
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fp models.BrowserFingerprint
		found := true
		if err := tx.Where("fingerprint_hash = ?", hash).Take(&fp).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			found = false
		}

		if found && fp.UserID != nil {
			var user models.User
			err := tx.Where("id = ?", *fp.UserID).Take(&user).Error
			if err == nil {
				res = &Resolution{UserID: user.ID, Fingerprint: hash}
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		user := models.User{Fingerprint: hash}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if found {
			if err := tx.Model(&fp).Update("user_id", user.ID).Error; err != nil {
				return err
			}
		} else {
			fp = models.BrowserFingerprint{
				FingerprintHash:   hash,
				UserAgent:         signals.UserAgent,
				ScreenResolution:  signals.ScreenResolution,
				Timezone:          signals.Timezone,
				Language:          signals.Language,
				Platform:          signals.Platform,
				Plugins:           signals.Plugins,
				CanvasFingerprint: signals.CanvasFingerprint,
				WebGLFingerprint:  signals.WebGLFingerprint,
				UserID:            &user.ID,
			}
			if err := tx.Create(&fp).Error; err != nil {
				return err
			}
		}

		res = &Resolution{UserID: user.ID, Fingerprint: hash, IsNew: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *IdentityService) lookup(ctx context.Context, hash string) (*Resolution, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("fingerprint = ?", hash).Take(&user).Error; err != nil {
		return nil, err
	}
	return &Resolution{UserID: user.ID, Fingerprint: hash}, nil
}

// DeleteUser removes a User and its Apps. Fingerprint rows stay behind,
// detached, so the same browser resolves to a fresh User next time.
func (s *IdentityService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", userID).Delete(&models.App{}).Error; err != nil {
			return fmt.Errorf("failed to delete apps: %w", err)
		}
		if err := tx.Model(&models.BrowserFingerprint{}).
			Where("user_id = ?", userID).
			Update("user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach fingerprints: %w", err)
		}
		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
