package fallback

import "github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"

// catalog holds the pre-authored projects served when generation is down.
// Kept deliberately varied across difficulty and category so filtered
// requests usually find a match.
var catalog = []domain.Project{
	{
		Title:         "Todo List with Dark Mode",
		Description:   "A task manager with a modern interface, automatic dark mode and local persistence. A solid exercise in state management and client-side storage.",
		Difficulty:    domain.DifficultyBeginner,
		EstimatedTime: "1-2 days",
		Category:      "Web Application",
		Technologies: []domain.Technology{
			{Name: "React", Kind: domain.TechFrontend, Reason: "Reusable components and hooks for state"},
			{Name: "localStorage", Kind: domain.TechDatabase, Reason: "Simple persistence without a backend"},
		},
		Features: []string{"Add/remove tasks", "Dark mode toggle", "Filter by status", "Local persistence", "Smooth animations"},
	},
	{
		Title:         "Weather Dashboard",
		Description:   "A weather dashboard showing current conditions and multi-city forecasts with interactive charts and automatic geolocation.",
		Difficulty:    domain.DifficultyIntermediate,
		EstimatedTime: "3-4 days",
		Category:      "Data Visualization",
		Technologies: []domain.Technology{
			{Name: "Vue.js", Kind: domain.TechFrontend, Reason: "Reactivity for live data updates"},
			{Name: "Chart.js", Kind: domain.TechFrontend, Reason: "Interactive charts for weather series"},
			{Name: "OpenWeather API", Kind: domain.TechOther, Reason: "Accurate, frequently updated weather data"},
		},
		Features: []string{"Automatic geolocation", "City search", "Temperature charts", "5-day forecast", "Responsive layout"},
	},
	{
		Title:         "E-commerce Product Filter",
		Description:   "An advanced product filtering system with live search, category, price and rating facets, and smooth result transitions.",
		Difficulty:    domain.DifficultyIntermediate,
		EstimatedTime: "4-5 days",
		Category:      "E-commerce",
		Technologies: []domain.Technology{
			{Name: "Next.js", Kind: domain.TechFrontend, Reason: "Server-side rendering for fast first paint"},
			{Name: "MongoDB", Kind: domain.TechDatabase, Reason: "Flexible schema for heterogeneous product attributes"},
		},
		Features: []string{"Live search", "Multi-facet filters", "Dynamic sorting", "Infinite pagination", "User favorites"},
	},
	{
		Title:         "Personal Finance Tracker",
		Description:   "An expense tracking application with automatic categorization, budgets and visual reports built from transaction history.",
		Difficulty:    domain.DifficultyAdvanced,
		EstimatedTime: "1-2 weeks",
		Category:      "Finance",
		Technologies: []domain.Technology{
			{Name: "FastAPI", Kind: domain.TechBackend, Reason: "Fast API layer with automatic validation"},
			{Name: "PostgreSQL", Kind: domain.TechDatabase, Reason: "Reliable storage for financial records"},
			{Name: "D3.js", Kind: domain.TechFrontend, Reason: "Custom interactive visualizations"},
		},
		Features: []string{"Automatic categorization", "Budget alerts", "Exportable reports", "Trend analysis", "Multi-account support"},
	},
	{
		Title:         "URL Shortener with Analytics",
		Description:   "A URL shortening service with an analytics panel covering click counts, referrers and geolocation, plus generated QR codes.",
		Difficulty:    domain.DifficultyBeginner,
		EstimatedTime: "2-3 days",
		Category:      "Web Service",
		Technologies: []domain.Technology{
			{Name: "Node.js", Kind: domain.TechBackend, Reason: "Lightweight runtime for a small web service"},
			{Name: "Redis", Kind: domain.TechDatabase, Reason: "Fast lookups for short URL resolution"},
		},
		Features: []string{"Custom short URLs", "Click analytics", "QR code generation", "Scheduled expiry", "REST API"},
	},
	{
		Title:         "Recipe Finder with AI",
		Description:   "A recipe discovery tool that suggests dishes from available ingredients, dietary restrictions and personal preferences.",
		Difficulty:    domain.DifficultyAdvanced,
		EstimatedTime: "2-3 weeks",
		Category:      "AI Application",
		Technologies: []domain.Technology{
			{Name: "React", Kind: domain.TechFrontend, Reason: "Interactive search and filter interface"},
			{Name: "OpenAI API", Kind: domain.TechOther, Reason: "Suggestion ranking and nutritional analysis"},
			{Name: "Elasticsearch", Kind: domain.TechDatabase, Reason: "Full-text search across recipes"},
		},
		Features: []string{"Ingredient-based search", "Nutritional analysis", "Automatic shopping list", "Meal planner", "Personalized recommendations"},
	},
	{
		Title:         "Habit Tracking Mobile App",
		Description:   "A mobile habit tracker with streaks, reminders and weekly progress summaries synced across devices.",
		Difficulty:    domain.DifficultyIntermediate,
		EstimatedTime: "1 week",
		Category:      "Mobile Application",
		Technologies: []domain.Technology{
			{Name: "Flutter", Kind: domain.TechMobile, Reason: "Single codebase for iOS and Android"},
			{Name: "SQLite", Kind: domain.TechDatabase, Reason: "Embedded storage for offline use"},
		},
		Features: []string{"Streak tracking", "Push reminders", "Weekly summaries", "Offline mode", "Cloud sync"},
	},
	{
		Title:         "Container Deployment Dashboard",
		Description:   "A small operations dashboard that lists running containers, surfaces health checks and triggers rolling restarts.",
		Difficulty:    domain.DifficultyAdvanced,
		EstimatedTime: "1-2 weeks",
		Category:      "DevOps Tools",
		Technologies: []domain.Technology{
			{Name: "Go", Kind: domain.TechBackend, Reason: "Static binary that talks to the Docker API directly"},
			{Name: "Docker", Kind: domain.TechDevOps, Reason: "Target runtime being managed"},
			{Name: "HTMX", Kind: domain.TechFrontend, Reason: "Server-driven UI without a JS build step"},
		},
		Features: []string{"Container listing", "Health check status", "Rolling restarts", "Log streaming", "Deploy history"},
	},
	{
		Title:         "Markdown Notes API",
		Description:   "A REST API for markdown notes with tagging, full-text search and shareable read-only links.",
		Difficulty:    domain.DifficultyBeginner,
		EstimatedTime: "2-3 days",
		Category:      "Web Service",
		Technologies: []domain.Technology{
			{Name: "Express.js", Kind: domain.TechBackend, Reason: "Minimal framework for a small REST surface"},
			{Name: "SQLite", Kind: domain.TechDatabase, Reason: "Zero-setup storage for notes"},
		},
		Features: []string{"CRUD for notes", "Tagging", "Full-text search", "Share links", "Markdown rendering"},
	},
}
