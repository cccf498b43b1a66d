package input

import (
	"context"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSource reads key events from an ultraviolet terminal and hands
// them out once per frame.
//
// Most terminals only report presses, repeated while a key is held. Until a
// release has been seen presses are reported as KeyTap; once the terminal
// has shown it reports releases, presses become KeyDown.
type TerminalSource struct {
	events   <-chan uv.Event
	frame    time.Duration
	releases bool
}

// NewTerminalSource creates a source that returns a batch every frame at
// the given frame rate. A non-positive rate is treated as 1.
func NewTerminalSource(events <-chan uv.Event, fps int) *TerminalSource {
	return &TerminalSource{
		events: events,
		frame:  frameDuration(fps),
	}
}

func frameDuration(fps int) time.Duration {
	return time.Second / time.Duration(max(fps, 1))
}

// Poll waits for the next frame tick and returns the events received in
// the meantime. A closed event channel is reported as Quit.
func (s *TerminalSource) Poll(ctx context.Context) ([]Event, error) {
	tick := time.NewTimer(s.frame)
	defer tick.Stop()

	var out []Event
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-tick.C:
			return out, nil
		case ev, ok := <-s.events:
			if !ok {
				return append(out, Event{Kind: Quit}), nil
			}
			if e, ok := s.translate(ev); ok {
				out = append(out, e)
			}
		}
	}
}

func (s *TerminalSource) translate(ev uv.Event) (Event, bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		return Event{Kind: Resize, Width: ev.Width, Height: ev.Height}, true

	case uv.KeyPressEvent:
		if ev.MatchString("escape", "ctrl+c") {
			return Event{Kind: Quit}, true
		}
		if k, ok := matchKey(ev.MatchString); ok {
			kind := KeyTap
			if s.releases {
				kind = KeyDown
			}
			return Event{Kind: kind, Key: k}, true
		}

	case uv.KeyReleaseEvent:
		s.releases = true
		if k, ok := matchKey(ev.MatchString); ok {
			return Event{Kind: KeyUp, Key: k}, true
		}
	}
	return Event{}, false
}

func matchKey(match func(...string) bool) (Key, bool) {
	for _, k := range Keys {
		if match(k.String()) {
			return k, true
		}
	}
	return KeyNone, false
}
