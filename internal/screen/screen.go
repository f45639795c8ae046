package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is an optional interface for screens that own goroutines or
// in-flight requests. The router calls Close when the screen leaves the
// stack.
type Closer interface {
	Close()
}

// ConfigChangedMsg is broadcast to every screen on the stack when the
// config file is reloaded.
type ConfigChangedMsg struct {
	Config config.Config
}

// InputCapturer is an optional interface for screens with a focused text
// field. While CapturingInput reports true the app passes Esc to the screen
// instead of popping it.
type InputCapturer interface {
	CapturingInput() bool
}
