package sse

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultInterval is the fixed polling cadence between status fetches.
const DefaultInterval = 2 * time.Second

// Event is one message pushed to the subscriber. An empty Name means the
// default (unnamed) SSE event; "finished" and "error" are the two named
// events a session can emit.
type Event struct {
	Name string
	Data []byte
}

// FetchFunc retrieves the current status envelope for the session's task.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Session owns the repeating-poll lifecycle for one subscriber watching one
// task. It fetches status immediately, then on a fixed interval, pushing
// every envelope it sees until the task reaches a terminal status, a fetch
// fails, or the subscriber's context is canceled. Fetches are sequential so
// at most one is ever outstanding.
type Session struct {
	Fetch    FetchFunc
	Terminal map[string]bool
	Interval time.Duration
}

// NewSession builds a session with the default polling interval.
func NewSession(fetch FetchFunc, terminal map[string]bool) *Session {
	return &Session{
		Fetch:    fetch,
		Terminal: terminal,
		Interval: DefaultInterval,
	}
}

// Run drives the poll loop and closes out when the session finishes, for any
// reason. It is meant to run on its own goroutine, one per subscriber.
//
// A fetch failing ends the session after a single "error" event; the browser
// re-subscribes if it wants another go. A fetch that completes after the
// subscriber went away is discarded, never written to the channel.
func (s *Session) Run(ctx context.Context, out chan<- Event) {
	defer close(out)

	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		envelope, err := s.Fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			msg, _ := json.Marshal(map[string]string{"message": err.Error()})
			s.emit(ctx, out, Event{Name: "error", Data: msg})
			return
		}
		if !s.emit(ctx, out, Event{Data: envelope}) {
			return
		}
		if s.isTerminal(envelope) {
			s.emit(ctx, out, Event{Name: "finished", Data: envelope})
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// emit delivers ev unless the subscriber is gone. Reports whether delivery
// happened.
func (s *Session) emit(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Session) isTerminal(envelope json.RawMessage) bool {
	var probe struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(envelope, &probe); err != nil {
		return false
	}
	return s.Terminal[probe.Status]
}
