package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type FingerprintResponse struct {
	Success     bool      `json:"success"`
	UserID      uuid.UUID `json:"user_id"`
	Fingerprint string    `json:"fingerprint"`
	IsNewUser   bool      `json:"is_new_user"`
	Token       string    `json:"token"`
}

type AppListResponse struct {
	Success bool         `json:"success"`
	Apps    []models.App `json:"apps"`
	UserID  *uuid.UUID   `json:"user_id"`
}

type AppResponse struct {
	Success bool        `json:"success"`
	App     *models.App `json:"app"`
}

type AccessResponse struct {
	Success    bool  `json:"success"`
	ClickCount int64 `json:"click_count"`
}

type PreviewResponse struct {
	Success    bool   `json:"success"`
	PreviewURL string `json:"preview_url"`
}

type HealthCheckResponse struct {
	Success    bool `json:"success"`
	IsHealthy  bool `json:"is_healthy"`
	StatusCode *int `json:"status_code"`
}

type BatchHealthResult struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	IsHealthy bool      `json:"is_healthy"`
}

type BatchHealthResponse struct {
	Success bool                `json:"success"`
	Results []BatchHealthResult `json:"results"`
}

type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserInfoResponse struct {
	Success  bool     `json:"success"`
	User     UserInfo `json:"user"`
	AppCount int64    `json:"app_count"`
}

type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TagListResponse struct {
	Success bool       `json:"success"`
	Tags    []TagCount `json:"tags"`
}

type ServiceHealthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
