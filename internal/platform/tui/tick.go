// Package tui provides the Bubble Tea front end for Pac-Man.
// It handles the terminal UI loop, input mapping and result recording.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

// DefaultFrameRate is the number of redraws per second.
const DefaultFrameRate = 30

// TickMsg is sent to trigger a redraw.
type TickMsg time.Time

// EventMsg carries a session event into the Bubble Tea loop.
type EventMsg struct {
	Event pacman.Event
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForEvent blocks until the session publishes an event, the channel is
// closed or ctx is done. The last two yield no message, which ends the
// listen loop.
func waitForEvent(ctx context.Context, ch *pacman.EventChannel) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-ch.Events():
			return EventMsg{Event: evt}
		case <-ch.Done():
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
