package tui

import "time"

const (
	headerTitle = "InsightLens"
	heroTagline = "Ask a question about your business data"
)

const (
	composerPlaceholder = "Ask a question about your data…"
	composerCharLimit   = 500
)

const (
	loadingMessage    = "Loading..."
	escalationMessage = "Still working, this may take a while..."
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)

const clipboardFadeDelay = 2 * time.Second

// quickQueries are the preset questions bound to f1 and f2. Picking one only
// fills the composer.
var quickQueries = []string{
	"What are the top five portfolios of our wealth members?",
	"Give me the breakup of portfolio values per relationship manager.",
}
