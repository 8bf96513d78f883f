package ai

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
)

// parseDrafts extracts the JSON array from the model's reply and converts it
// to validated projects. The model sometimes wraps the array in prose, so the
// first '[' through the last ']' is taken. Malformed entries are dropped
// individually rather than failing the whole batch; zero valid entries is an
// unavailable result.
func parseDrafts(content string) ([]domain.Project, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in response", domain.ErrGenerationUnavailable)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode drafts: %v", domain.ErrGenerationUnavailable, err)
	}

	projects := make([]domain.Project, 0, len(raw))
	for i, entry := range raw {
		var p domain.Project
		if err := json.Unmarshal(entry, &p); err != nil {
			log.Printf("[warn] operation=parse_drafts index=%d error=%v", i, err)
			continue
		}
		if err := p.Validate(); err != nil {
			log.Printf("[warn] operation=parse_drafts index=%d dropped invalid draft: %v", i, err)
			continue
		}
		projects = append(projects, p)
	}

	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no valid drafts parsed", domain.ErrGenerationUnavailable)
	}
	return projects, nil
}
