// Package session binds a resolved user id to the caller across requests
// using a signed token held by the client (cookie or bearer header).
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "apphub_session"

	tokenLocal     = "session_token"
	requesterLocal = "requester"
	hkdfInfo       = "apphub session signing key v1"
)

var ErrMissingSecret = errors.New("session secret is required")

// Requester is the caller of an operation. The zero value is anonymous.
type Requester struct {
	UserID uuid.UUID
}

func Anonymous() Requester { return Requester{} }

func For(userID uuid.UUID) Requester { return Requester{UserID: userID} }

func (r Requester) Authenticated() bool { return r.UserID != uuid.Nil }

// Manager issues and verifies session tokens.
type Manager struct {
	key    []byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secureCookie bool) (*Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return &Manager{key: key, ttl: ttl, secure: secureCookie}, nil
}

// Issue signs a token binding userID (and the fingerprint it came from).
func (m *Manager) Issue(userID uuid.UUID, fingerprintHash string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"fp":  fingerprintHash,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Bind issues a token for userID and stores it in the session cookie.
func (m *Manager) Bind(c *fiber.Ctx, userID uuid.UUID, fingerprintHash string) (string, error) {
	token, expiresAt, err := m.Issue(userID, fingerprintHash)
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(requesterLocal, For(userID))
	return token, nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.ClearCookie(CookieName)
	c.Locals(requesterLocal, Anonymous())
}

// Optional resolves the requester from the session token when present.
// Missing, expired or forged tokens leave the request anonymous.
func (m *Manager) Optional() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: m.key},
		ContextKey:  tokenLocal,
		TokenLookup: "header:" + fiber.HeaderAuthorization + ",cookie:" + CookieName,
		AuthScheme:  "Bearer",
		SuccessHandler: func(c *fiber.Ctx) error {
			c.Locals(requesterLocal, requesterFromToken(c))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			c.Locals(requesterLocal, Anonymous())
			return c.Next()
		},
	})
}

// Required rejects anonymous callers. It must run after Optional.
func Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !FromCtx(c).Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Error: "User not authenticated",
			})
		}
		return c.Next()
	}
}

// FromCtx returns the requester bound to this request.
func FromCtx(c *fiber.Ctx) Requester {
	if r, ok := c.Locals(requesterLocal).(Requester); ok {
		return r
	}
	return Anonymous()
}

func requesterFromToken(c *fiber.Ctx) Requester {
	token, ok := c.Locals(tokenLocal).(*jwt.Token)
	if !ok {
		return Anonymous()
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Anonymous()
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Anonymous()
	}
	return For(userID)
}
