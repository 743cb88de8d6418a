package loop

import "time"

// Frame driver limits.
const (
	// maxFixedSteps caps physics catch-up per frame; any larger backlog
	// is dropped rather than simulated.
	maxFixedSteps = 5

	// viewMargin pads the viewport so boundary lines land on screen.
	viewMargin = 0.3

	// playfieldHalfWidth is half the visible width in world units.
	playfieldHalfWidth = 10.0
)

// Session limits.
const (
	DefaultIdleWarn    = 90 * time.Second
	DefaultIdleTimeout = 120 * time.Second

	shutdownNotice = 2 * time.Second
)
