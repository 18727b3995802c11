package tagindex

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
	"github.com/stretchr/testify/assert"
)

func appsWithTags(sets ...[]string) []models.App {
	apps := make([]models.App, len(sets))
	for i, s := range sets {
		apps[i] = models.App{Tags: models.NewTags(s)}
	}
	return apps
}

func TestRankOrdersByFrequency(t *testing.T) {
	ranked := Rank(appsWithTags([]string{"a", "b"}, []string{"b"}, []string{"b", "c"}))

	assert.Equal(t, []Count{
		{Name: "b", Count: 3},
		{Name: "a", Count: 1},
		{Name: "c", Count: 1},
	}, ranked)
}

func TestRankCountsAppsNotOccurrences(t *testing.T) {
	apps := []models.App{{Tags: models.Tags{"x", "x"}}, {Tags: models.Tags{"x"}}}
	assert.Equal(t, []Count{{Name: "x", Count: 2}}, Rank(apps))
}

func TestRankIsCaseSensitive(t *testing.T) {
	ranked := Rank(appsWithTags([]string{"Go"}, []string{"go"}, []string{"go"}))
	assert.Equal(t, []Count{{Name: "go", Count: 2}, {Name: "Go", Count: 1}}, ranked)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank(appsWithTags(nil, []string{})))
}
