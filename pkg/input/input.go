// Package input turns key events into light rotations.
//
// Six keys rotate the light by a fixed step around one axis each. Rotation
// is frame driven: a held key rotates the light once per rendered frame.
package input

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/phong/pkg/math3d"
)

// DefaultStep is the rotation applied per frame, in degrees.
const DefaultStep = 5.0

// Key identifies one of the rotation keys.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyD
	KeyW
	KeyS
	KeyQ
	KeyE
)

// Keys lists the rotation keys in the order held keys are applied.
var Keys = [...]Key{KeyA, KeyD, KeyW, KeyS, KeyQ, KeyE}

// ErrUnknownKey is returned by ParseKey.
var ErrUnknownKey = errors.New("unknown key")

func (k Key) String() string {
	switch k {
	case KeyA:
		return "a"
	case KeyD:
		return "d"
	case KeyW:
		return "w"
	case KeyS:
		return "s"
	case KeyQ:
		return "q"
	case KeyE:
		return "e"
	}
	return "none"
}

// ParseKey returns the key named s, case-insensitively.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys parses a sequence of single-letter keys such as "ddwq".
func ParseKeys(s string) ([]Key, error) {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		k, err := ParseKey(string(r))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Binding is the rotation a key performs: Sign * step degrees around Axis.
type Binding struct {
	Axis math3d.Axis
	Sign float64
}

// Binding returns the rotation bound to k. ok is false for KeyNone and
// unknown keys.
func (k Key) Binding() (b Binding, ok bool) {
	switch k {
	case KeyA:
		return Binding{math3d.AxisY, -1}, true
	case KeyD:
		return Binding{math3d.AxisY, 1}, true
	case KeyW:
		return Binding{math3d.AxisX, 1}, true
	case KeyS:
		return Binding{math3d.AxisX, -1}, true
	case KeyQ:
		return Binding{math3d.AxisZ, 1}, true
	case KeyE:
		return Binding{math3d.AxisZ, -1}, true
	}
	return Binding{}, false
}

// ApplyHeldKey returns light rotated once by the binding of key, step
// degrees at a time. Keys without a binding leave light unchanged. The
// result is not renormalised.
func ApplyHeldKey(light math3d.Vec3, key Key, step float64) math3d.Vec3 {
	b, ok := key.Binding()
	if !ok {
		return light
	}
	return math3d.RotateVec3(math3d.Rotation(b.Axis, b.Sign*step), light)
}

// EventKind says what an Event reports.
type EventKind int

const (
	// KeyDown starts holding a key.
	KeyDown EventKind = iota
	// KeyUp releases a held key.
	KeyUp
	// KeyTap applies a key once without holding it. Sources that never
	// see releases report presses this way.
	KeyTap
	// Resize reports a new output size in cells or pixels.
	Resize
	// Quit ends the frame loop.
	Quit
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyTap:
		return "tap"
	case Resize:
		return "resize"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one input occurrence.
type Event struct {
	Kind          EventKind
	Key           Key
	Width, Height int // Resize only
}

// Source delivers input to the frame loop. Poll blocks until the next batch
// of events is due and may return an empty batch.
type Source interface {
	Poll(ctx context.Context) ([]Event, error)
}
