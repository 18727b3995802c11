package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/tagindex"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxNameLength = 100
	maxURLLength  = 500
)

type AppService struct {
	db *gorm.DB
}

func NewAppService(db *gorm.DB) *AppService {
	return &AppService{db: db}
}

// visibleTo limits a query to the Apps r may see: its own plus every
// public App. Anonymous requesters only see public Apps.
func visibleTo(r session.Requester) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !r.Authenticated() {
			return db.Where("is_public = ?", true)
		}
		return db.Where("creator_id = ? OR is_public = ?", r.UserID, true)
	}
}

func ownedBy(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_id = ?", userID)
	}
}

func listOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func requireOwner(app *models.App, r session.Requester) error {
	if !r.Authenticated() {
		return ErrUnauthenticated
	}
	if !app.OwnedBy(r.UserID) {
		return ErrNotOwner
	}
	return nil
}

func findApp(tx *gorm.DB, appID uuid.UUID) (*models.App, error) {
	var app models.App
	if err := tx.Where("id = ?", appID).Take(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (s *AppService) List(ctx context.Context, r session.Requester) ([]models.App, error) {
	apps := []models.App{}
	if err := s.db.WithContext(ctx).Scopes(visibleTo(r), listOrder).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}

// Get returns an App visible to r. Private Apps of other users are
// reported as not found.
func (s *AppService) Get(ctx context.Context, r session.Requester, appID uuid.UUID) (*models.App, error) {
	return findApp(s.db.WithContext(ctx).Scopes(visibleTo(r)), appID)
}

func (s *AppService) Create(ctx context.Context, r session.Requester, req *dto.CreateAppRequest) (*models.App, error) {
	if !r.Authenticated() {
		return nil, ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if err := validateApp(name, url); err != nil {
		return nil, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	app := models.App{
		Name:        name,
		URL:         url,
		IconURL:     strings.TrimSpace(req.IconURL),
		Description: req.Description,
		IsPublic:    isPublic,
		IsHealthy:   true,
		Tags:        models.NewTags(req.Tags),
		CreatorID:   r.UserID,
	}
	// A session can outlive its User, so the owner row is checked in the
	// same transaction as the insert.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", r.UserID).Take(&models.User{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnauthenticated
			}
			return err
		}
		if err := tx.Create(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrUnauthenticated
			}
			return fmt.Errorf("failed to create app: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Update applies only the fields present in req. Tags, when present,
// replace the whole set.
func (s *AppService) Update(ctx context.Context, r session.Requester, appID uuid.UUID, req *dto.UpdateAppRequest) (*models.App, error) {
	if !r.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var updated *models.App
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := findApp(tx, appID)
		if err != nil {
			return err
		}
		if err := requireOwner(app, r); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.URL != nil {
			updates["url"] = strings.TrimSpace(*req.URL)
		}
		if req.IconURL != nil {
			updates["icon_url"] = strings.TrimSpace(*req.IconURL)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.IsPublic != nil {
			updates["is_public"] = *req.IsPublic
		}
		if req.Tags != nil {
			updates["tags"] = models.NewTags(*req.Tags)
		}

		name, url := app.Name, app.URL
		if v, ok := updates["name"].(string); ok {
			name = v
		}
		if v, ok := updates["url"].(string); ok {
			url = v
		}
		if err := validateApp(name, url); err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(app).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update app: %w", err)
			}
		}

		updated, err = findApp(tx, appID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AppService) Delete(ctx context.Context, r session.Requester, appID uuid.UUID) error {
	if !r.Authenticated() {
		return ErrUnauthenticated
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := findApp(tx, appID)
		if err != nil {
			return err
		}
		if err := requireOwner(app, r); err != nil {
			return err
		}
		if err := tx.Delete(app).Error; err != nil {
			return fmt.Errorf("failed to delete app: %w", err)
		}
		return nil
	})
}

// RecordAccess bumps the click counter in a single UPDATE and returns the
// resulting count. Any caller may record an access.
func (s *AppService) RecordAccess(ctx context.Context, appID uuid.UUID) (int64, error) {
	var clicks int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.App{}).
			Where("id = ?", appID).
			UpdateColumns(map[string]interface{}{
				"click_count":   gorm.Expr("click_count + ?", 1),
				"last_accessed": currentTimestamp(tx.Dialector.Name()),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to record access: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAppNotFound
		}
		return tx.Model(&models.App{}).
			Where("id = ?", appID).
			Pluck("click_count", &clicks).Error
	})
	if err != nil {
		return 0, err
	}
	return clicks, nil
}

// currentTimestamp is the database clock at statement execution, so the
// access that updates the row last also stores the latest time.
func currentTimestamp(dialect string) clause.Expr {
	switch dialect {
	case "postgres":
		// now() is frozen at transaction start.
		return gorm.Expr("clock_timestamp()")
	case "sqlite":
		return gorm.Expr("strftime('%Y-%m-%d %H:%M:%f', 'now')")
	default:
		return gorm.Expr("CURRENT_TIMESTAMP")
	}
}

func (s *AppService) GetUserInfo(ctx context.Context, r session.Requester) (*dto.UserInfoResponse, error) {
	if !r.Authenticated() {
		return nil, ErrUnauthenticated
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("id = ?", r.UserID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.App{}).Scopes(ownedBy(user.ID)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count apps: %w", err)
	}

	return &dto.UserInfoResponse{
		Success: true,
		User: dto.UserInfo{
			ID:          user.ID,
			Fingerprint: user.Fingerprint,
			CreatedAt:   user.CreatedAt,
		},
		AppCount: count,
	}, nil
}

// Tags ranks tags over the same App set List returns for r.
func (s *AppService) Tags(ctx context.Context, r session.Requester) ([]tagindex.Count, error) {
	var apps []models.App
	if err := s.db.WithContext(ctx).Scopes(visibleTo(r)).Select("id", "tags").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	return tagindex.Rank(apps), nil
}

func validateApp(name, url string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidApp)
	case url == "":
		return fmt.Errorf("%w: url is required", ErrInvalidApp)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidApp, maxNameLength)
	case len(url) > maxURLLength:
		return fmt.Errorf("%w: url must be at most %d characters", ErrInvalidApp, maxURLLength)
	}
	return nil
}
