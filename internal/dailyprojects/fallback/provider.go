// Package fallback serves pre-authored project templates when AI generation
// fails. Selection is seeded from the date so repeated fallbacks on the same
// day return a stable set instead of visibly reshuffling content.
package fallback

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
)

// Provider samples projects from the in-process catalog.
type Provider struct {
	catalog []domain.Project
}

func NewProvider() *Provider {
	return &Provider{catalog: catalog}
}

// CatalogSize reports how many templates are available.
func (p *Provider) CatalogSize() int {
	return len(p.catalog)
}

// Sample returns count projects chosen deterministically for the given date.
// Difficulty and category preferences filter the catalog first; if the filter
// leaves nothing, the whole catalog is used instead and widened reports true
// so the caller can flag the batch as degraded. The selection cycles when
// count exceeds the number of candidates.
func (p *Provider) Sample(date string, count int, difficulties []domain.DifficultyLevel, category string) (projects []domain.Project, widened bool) {
	candidates := p.filter(difficulties, category)
	if len(candidates) == 0 {
		candidates = append([]domain.Project(nil), p.catalog...)
		widened = true
	}

	rng := rand.New(rand.NewSource(dateSeed(date)))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	projects = make([]domain.Project, 0, count)
	for i := 0; i < count; i++ {
		projects = append(projects, candidates[i%len(candidates)])
	}
	return projects, widened
}

func (p *Provider) filter(difficulties []domain.DifficultyLevel, category string) []domain.Project {
	var out []domain.Project
	for _, proj := range p.catalog {
		if len(difficulties) > 0 && !containsDifficulty(difficulties, proj.Difficulty) {
			continue
		}
		if category != "" && !strings.EqualFold(proj.Category, category) {
			continue
		}
		out = append(out, proj)
	}
	return out
}

func containsDifficulty(levels []domain.DifficultyLevel, d domain.DifficultyLevel) bool {
	for _, l := range levels {
		if l == d {
			return true
		}
	}
	return false
}

func dateSeed(date string) int64 {
	h := fnv.New64a()
	h.Write([]byte(date))
	return int64(h.Sum64())
}
