// Package fingerprint derives the stable identity hash for a set of
// client-reported browser signals.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Signals is the raw record the browser submits. Missing JSON keys decode
// to empty strings, which hash the same as explicitly empty fields.
type Signals struct {
	UserAgent         string `json:"user_agent"`
	ScreenResolution  string `json:"screen_resolution"`
	Timezone          string `json:"timezone"`
	Language          string `json:"language"`
	Platform          string `json:"platform"`
	Plugins           string `json:"plugins"`
	CanvasFingerprint string `json:"canvas_fingerprint"`
	WebGLFingerprint  string `json:"webgl_fingerprint"`
}

// HashLength is the length of a hex-encoded SHA-256 digest.
const HashLength = sha256.Size * 2

// Hash concatenates the signals in fixed field order and returns the
// hex-encoded SHA-256 of the result.
func Hash(s Signals) string {
	var b strings.Builder
	for _, field := range s.ordered() {
		b.WriteString(field)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (s Signals) ordered() [8]string {
	return [8]string{
		s.UserAgent,
		s.ScreenResolution,
		s.Timezone,
		s.Language,
		s.Platform,
		s.Plugins,
		s.CanvasFingerprint,
		s.WebGLFingerprint,
	}
}
