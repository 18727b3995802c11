package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/config"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/probe"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ProbeService struct {
	db           *gorm.DB
	prober       probe.Prober
	previewer    probe.Previewer
	timeout      time.Duration
	batchTimeout time.Duration
	concurrency  int
}

func NewProbeService(db *gorm.DB, prober probe.Prober, previewer probe.Previewer, cfg *config.Config) *ProbeService {
	concurrency := cfg.BatchProbeConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProbeService{
		db:           db,
		prober:       prober,
		previewer:    previewer,
		timeout:      cfg.HealthTimeout,
		batchTimeout: cfg.BatchHealthTimeout,
		concurrency:  concurrency,
	}
}

// CheckHealth probes one App and stores the verdict. No ownership check.
func (s *ProbeService) CheckHealth(ctx context.Context, appID uuid.UUID) (probe.Result, error) {
	db := s.db.WithContext(ctx)
	app, err := findApp(db, appID)
	if err != nil {
		return probe.Result{}, err
	}

	result := s.run(ctx, "single", app.URL, s.timeout)

	if err := db.Model(&models.App{}).
		Where("id = ?", app.ID).
		UpdateColumns(healthColumns(result.Healthy, time.Now())).Error; err != nil {
		return probe.Result{}, fmt.Errorf("failed to store health: %w", err)
	}
	return result, nil
}

// CheckAllHealth probes every App owned by r. Probes run concurrently and
// in isolation; all verdicts are stored in one transaction. Results follow
// List order.
func (s *ProbeService) CheckAllHealth(ctx context.Context, r session.Requester) ([]dto.BatchHealthResult, error) {
	if !r.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var apps []models.App
	if err := s.db.WithContext(ctx).Scopes(ownedBy(r.UserID), listOrder).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to load apps: %w", err)
	}

	healthy := make([]bool, len(apps))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range apps {
		g.Go(func() error {
			healthy[i] = s.run(ctx, "batch", apps[i].URL, s.batchTimeout).Healthy
			return nil
		})
	}
	_ = g.Wait()

	checkedAt := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, app := range apps {
			if err := tx.Model(&models.App{}).
				Where("id = ?", app.ID).
				UpdateColumns(healthColumns(healthy[i], checkedAt)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store health: %w", err)
	}

	results := make([]dto.BatchHealthResult, len(apps))
	for i, app := range apps {
		results[i] = dto.BatchHealthResult{
			ID:        app.ID,
			Name:      app.Name,
			URL:       app.URL,
			IsHealthy: healthy[i],
		}
	}
	return results, nil
}

// GeneratePreview stores the preview-image url for an App. The preview
// service itself is not contacted.
func (s *ProbeService) GeneratePreview(ctx context.Context, appID uuid.UUID) (string, error) {
	db := s.db.WithContext(ctx)
	app, err := findApp(db, appID)
	if err != nil {
		return "", err
	}

	previewURL := s.previewer.PreviewURL(app.URL)
	if err := db.Model(&models.App{}).
		Where("id = ?", app.ID).
		UpdateColumn("preview_url", previewURL).Error; err != nil {
		return "", fmt.Errorf("failed to store preview url: %w", err)
	}
	return previewURL, nil
}

// run probes url, turning a panicking prober into an unhealthy verdict.
func (s *ProbeService) run(ctx context.Context, mode, url string, timeout time.Duration) (result probe.Result) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("probe panicked", "url", url, "mode", mode, "panic", fmt.Sprint(rec))
			result = probe.Result{}
		}
		metrics.RecordProbe(mode, result.Healthy, time.Since(start))
	}()
	return s.prober.Probe(ctx, url, timeout)
}

func healthColumns(healthy bool, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"is_healthy":      healthy,
		"health_check_at": at,
	}
}
