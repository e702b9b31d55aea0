package pacman

import "sync"

// Event is something a display collaborator may want to show.
type Event interface {
	pacmanEvent()
}

// ScoreChangedEvent is published after a collision pass that changed the score.
type ScoreChangedEvent struct {
	Score    int
	MaxScore int
}

func (ScoreChangedEvent) pacmanEvent() {}

// TimerEvent is published whenever the countdown changes.
type TimerEvent struct {
	Remaining int
}

func (TimerEvent) pacmanEvent() {}

// GameOverEvent is published once when a session reaches a terminal phase.
type GameOverEvent struct {
	Won      bool
	Reason   Reason
	Score    int
	MaxScore int
}

func (GameOverEvent) pacmanEvent() {}

// Publisher receives session events. Publish is called without the session
// lock held and must not block for long.
//
//go:generate go tool mockgen -destination=mocks/publisher_mock.go -package=mocks . Publisher
type Publisher interface {
	Publish(evt Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// EventChannel is a Publisher backed by a buffered channel.
// Publish never blocks: when the buffer is full the oldest event is dropped.
type EventChannel struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewEventChannel creates an event channel holding up to size events.
func NewEventChannel(size int) *EventChannel {
	if size < 1 {
		size = 64
	}
	return &EventChannel{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Publish queues an event, dropping the oldest one if the buffer is full.
func (c *EventChannel) Publish(evt Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- evt:
	default:
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- evt:
		default:
		}
	}
}

// Events returns the receive side of the channel.
func (c *EventChannel) Events() <-chan Event {
	return c.events
}

// Done is closed by Close.
func (c *EventChannel) Done() <-chan struct{} {
	return c.done
}

// Close stops accepting events. Safe to call multiple times.
func (c *EventChannel) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
