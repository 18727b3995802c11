package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMatchesConcatenatedDigest(t *testing.T) {
	s := Signals{
		UserAgent:         "Mozilla/5.0",
		ScreenResolution:  "1920x1080",
		Timezone:          "Europe/Berlin",
		Language:          "de-DE",
		Platform:          "Linux x86_64",
		Plugins:           "PDF Viewer",
		CanvasFingerprint: "1a2b",
		WebGLFingerprint:  "3c4d",
	}

	sum := sha256.Sum256([]byte("Mozilla/5.01920x1080Europe/Berlinde-DELinux x86_64PDF Viewer1a2b3c4d"))
	assert.Equal(t, hex.EncodeToString(sum[:]), Hash(s))
	assert.Len(t, Hash(s), HashLength)
}

func TestHashEmptySignals(t *testing.T) {
	sum := sha256.Sum256(nil)
	assert.Equal(t, hex.EncodeToString(sum[:]), Hash(Signals{}))
}

func TestHashIgnoresJSONKeyOrder(t *testing.T) {
	var a, b Signals
	require.NoError(t, json.Unmarshal([]byte(`{"user_agent":"ua","timezone":"UTC","plugins":"x"}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"plugins":"x","timezone":"UTC","user_agent":"ua"}`), &b))

	assert.Equal(t, Hash(a), Hash(b))
}

func TestHashMissingFieldEqualsEmpty(t *testing.T) {
	var decoded Signals
	require.NoError(t, json.Unmarshal([]byte(`{"user_agent":"ua"}`), &decoded))

	assert.Equal(t, Hash(Signals{UserAgent: "ua"}), Hash(decoded))
}

func TestHashDiffersPerField(t *testing.T) {
	base := Signals{UserAgent: "ua", Language: "en"}
	variants := []Signals{
		{UserAgent: "ua2", Language: "en"},
		{UserAgent: "ua", Language: "fr"},
		{UserAgent: "ua", Language: "en", WebGLFingerprint: "g"},
	}
	for _, v := range variants {
		assert.NotEqual(t, Hash(base), Hash(v))
	}
}
