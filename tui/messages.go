package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teasheet/sheet"
)

// SnappedMsg reports that the sheet finished settling at a snap size.
type SnappedMsg struct {
	ID     string
	Size   sheet.Size
	Height float64
}

// WillDismissMsg is emitted when a dismiss decision is made, before the
// dismiss animation runs.
type WillDismissMsg struct {
	ID string
}

// DismissedMsg is emitted after the dismiss animation completes. The
// host must remove the sheet from its view on receipt.
type DismissedMsg struct {
	ID string
}

// tickMsg drives settle and dismiss animations. The id keeps stale
// ticks from a replaced sheet instance out of the loop.
type tickMsg struct {
	id string
	at time.Time
}

const tickInterval = time.Second / 30

func tickCmd(id string) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}
