// Package tagindex ranks tags by how many apps in a visible set carry them.
package tagindex

import (
	"sort"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/models"
)

type Count struct {
	Name  string
	Count int
}

// Rank returns every distinct tag across apps with the number of apps that
// carry it, highest count first and ties broken by tag text.
func Rank(apps []models.App) []Count {
	counts := make(map[string]int)
	for _, app := range apps {
		// Tags is a set, so each app contributes at most once per tag.
		for _, tag := range models.NewTags(app.Tags) {
			counts[tag]++
		}
	}

	ranked := make([]Count, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, Count{Name: name, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
