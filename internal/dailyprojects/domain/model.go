package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxProjectCount bounds how many projects a single request may ask for.
	MaxProjectCount = 10

	// DateLayout is the calendar-day format used in batch keys and project IDs.
	DateLayout = "2006-01-02"
)

// DifficultyLevel classifies how demanding a project is.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// TechnologyKind classifies where a technology sits in the stack.
type TechnologyKind string

const (
	TechFrontend TechnologyKind = "frontend"
	TechBackend  TechnologyKind = "backend"
	TechDatabase TechnologyKind = "database"
	TechDevOps   TechnologyKind = "devops"
	TechMobile   TechnologyKind = "mobile"
	TechOther    TechnologyKind = "other"
)

func (k TechnologyKind) Valid() bool {
	switch k {
	case TechFrontend, TechBackend, TechDatabase, TechDevOps, TechMobile, TechOther:
		return true
	}
	return false
}

// Technology is one recommended piece of a project's stack. Immutable once
// attached to a Project.
type Technology struct {
	Name   string         `json:"name"`
	Kind   TechnologyKind `json:"kind"`
	Reason string         `json:"reason"`
}

// Project is a single generated project idea.
type Project struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Difficulty    DifficultyLevel `json:"difficulty"`
	EstimatedTime string          `json:"estimated_time"`
	Category      string          `json:"category"`
	Technologies  []Technology    `json:"technologies"`
	Features      []string        `json:"features"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// Validate checks the shape invariants a project must satisfy regardless of
// where it came from (AI draft or template catalog).
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if strings.TrimSpace(p.Description) == "" {
		return &ValidationError{Field: "description", Message: "must not be empty"}
	}
	if !p.Difficulty.Valid() {
		return &ValidationError{Field: "difficulty", Message: fmt.Sprintf("unknown level %q", p.Difficulty)}
	}
	if len(p.Technologies) == 0 {
		return &ValidationError{Field: "technologies", Message: "must not be empty"}
	}
	for _, tech := range p.Technologies {
		if strings.TrimSpace(tech.Name) == "" {
			return &ValidationError{Field: "technologies", Message: "technology name must not be empty"}
		}
		if !tech.Kind.Valid() {
			return &ValidationError{Field: "technologies", Message: fmt.Sprintf("unknown technology kind %q", tech.Kind)}
		}
	}
	if len(p.Features) == 0 {
		return &ValidationError{Field: "features", Message: "must not be empty"}
	}
	for _, f := range p.Features {
		if strings.TrimSpace(f) == "" {
			return &ValidationError{Field: "features", Message: "features must not be blank"}
		}
	}
	return nil
}

// BatchSource records which path produced a daily batch.
type BatchSource string

const (
	SourceAI       BatchSource = "ai"
	SourceFallback BatchSource = "fallback"
)

// DailyBatch is the set of projects cached under one date and requested count.
// All projects in a batch share the same GeneratedAt timestamp.
type DailyBatch struct {
	Date     string      `json:"date"`
	Projects []Project   `json:"projects"`
	Source   BatchSource `json:"source"`

	// Degraded is set when the batch was assembled partly from the template
	// catalog because generation fell short or filters had to be widened.
	// FallbackCount is how many of the projects were padded in.
	Degraded      bool `json:"degraded,omitempty"`
	FallbackCount int  `json:"fallback_count,omitempty"`
}

// GenerationRequest describes one generation call. Transient, never persisted.
type GenerationRequest struct {
	Count                int               `json:"count"`
	DifficultyPreference []DifficultyLevel `json:"difficulty_preference,omitempty"`
	CategoryPreference   string            `json:"category_preference,omitempty"`
	ForceRegenerate      bool              `json:"force_regenerate,omitempty"`
}

// Validate rejects malformed requests, naming the violated constraint.
func (r *GenerationRequest) Validate() error {
	if r.Count < 1 || r.Count > MaxProjectCount {
		return &ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("must be between 1 and %d", MaxProjectCount),
		}
	}
	for _, d := range r.DifficultyPreference {
		if !d.Valid() {
			return &ValidationError{
				Field:   "difficulty_preference",
				Message: fmt.Sprintf("unknown level %q", d),
			}
		}
	}
	if len(r.CategoryPreference) > 50 {
		return &ValidationError{Field: "category_preference", Message: "must be at most 50 characters"}
	}
	return nil
}

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"}
	}
	return t, nil
}

// ProjectID builds the positional identifier for a daily project. The n-th
// project of a day is "<date>-<n>", 1-based, so IDs are re-derivable from the
// batch key alone.
func ProjectID(date string, n int) string {
	return fmt.Sprintf("%s-%d", date, n)
}

// DateFromProjectID extracts the embedded generation date from a daily
// project ID. Returns false for custom or malformed IDs.
func DateFromProjectID(id string) (string, bool) {
	parts := strings.Split(id, "-")
	if len(parts) < 4 {
		return "", false
	}
	date := strings.Join(parts[:3], "-")
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", false
	}
	return date, true
}
