package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
)

const systemPrompt = `You are an expert software architect and development mentor with over 15 years of experience. Your specialty is creating practical, innovative and educational project ideas for developers of all levels.

IMPORTANT: respond ONLY with a valid JSON array, with no text before or after it.

Your projects:
- solve genuine problems
- use modern, market-relevant technologies
- have a realistic scope for their difficulty level
- list concrete, well-defined features

Difficulty levels:
- beginner: 1-3 days, basic concepts, few technologies
- intermediate: 3-7 days, system integration, multiple technologies
- advanced: 1-3 weeks, complex architectures, advanced optimizations`

var suggestedCategories = []string{
	"Web Applications", "Mobile Apps", "Desktop Tools", "APIs & Microservices",
	"Data Analysis", "Automation Tools",
}

var techTrends = []string{
	"Next.js with App Router", "React Server Components", "TypeScript 5+",
	"Tailwind CSS", "Prisma ORM", "tRPC", "Supabase", "Vercel AI SDK",
	"Astro", "SvelteKit",
}

// buildPrompt encodes the request's count, difficulty mix and category into
// the user prompt, plus the exact JSON shape the parser expects back.
func buildPrompt(req domain.GenerationRequest) string {
	var difficultyDist string
	switch {
	case len(req.DifficultyPreference) > 0:
		levels := make([]string, len(req.DifficultyPreference))
		for i, d := range req.DifficultyPreference {
			levels[i] = string(d)
		}
		difficultyDist = "preferably: " + strings.Join(levels, ", ")
	case req.Count == 5:
		difficultyDist = "1 beginner, 2 intermediate, 2 advanced"
	default:
		difficultyDist = fmt.Sprintf("balanced across the %d projects", req.Count)
	}

	categoryHint := "Vary between: " + strings.Join(suggestedCategories, ", ")
	if req.CategoryPreference != "" {
		categoryHint = "Preferably in: " + req.CategoryPreference
	}

	return fmt.Sprintf(`Generate exactly %d unique and creative software project ideas for %d.

DIFFICULTY DISTRIBUTION: %s
CATEGORIES: %s

CURRENT TRENDS TO CONSIDER: %s

For each project, provide the information in this EXACT JSON shape:

{
  "title": "Concise, catchy project name",
  "description": "2-3 sentences explaining the problem it solves and its value",
  "difficulty": "beginner|intermediate|advanced",
  "estimated_time": "realistic time (e.g. 2-3 days, 1 week)",
  "category": "specific project category",
  "technologies": [
    {
      "name": "Exact technology name",
      "kind": "frontend|backend|database|devops|mobile|other",
      "reason": "Specific technical justification for this technology"
    }
  ],
  "features": ["concrete feature 1", "concrete feature 2", "concrete feature 3"]
}

REQUIREMENTS:
1. Each project has 2-5 technologies
2. Features are concrete functionality, not generalities
3. Titles are unique and memorable
4. Technologies match the difficulty level

RESPOND ONLY WITH THE JSON ARRAY, NO ADDITIONAL TEXT.`,
		req.Count, time.Now().Year(), difficultyDist, categoryHint, strings.Join(techTrends, ", "))
}
