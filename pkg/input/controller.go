package input

import "github.com/taigrr/phong/pkg/math3d"

// Controller tracks held keys between frames and rotates the light.
type Controller struct {
	step float64
	held [len(Keys) + 1]bool // indexed by Key
	taps []Key
	quit bool
}

// NewController creates a controller rotating by step degrees per frame.
// A non-positive step selects DefaultStep.
func NewController(step float64) *Controller {
	if step <= 0 {
		step = DefaultStep
	}
	return &Controller{step: step}
}

// Handle records ev.
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case KeyDown:
		if valid(ev.Key) {
			c.held[ev.Key] = true
		}
	case KeyUp:
		if valid(ev.Key) {
			c.held[ev.Key] = false
		}
	case KeyTap:
		if valid(ev.Key) {
			c.taps = append(c.taps, ev.Key)
		}
	case Quit:
		c.quit = true
	}
}

// Held reports whether k is currently held.
func (c *Controller) Held(k Key) bool {
	return valid(k) && c.held[k]
}

// Step advances one frame: every held key is applied once, in Keys order,
// followed by the taps received since the last step.
func (c *Controller) Step(light math3d.Vec3) math3d.Vec3 {
	for _, k := range Keys {
		if c.held[k] {
			light = ApplyHeldKey(light, k, c.step)
		}
	}
	for _, k := range c.taps {
		light = ApplyHeldKey(light, k, c.step)
	}
	c.taps = c.taps[:0]
	return light
}

// Active reports whether the next Step would change the light.
func (c *Controller) Active() bool {
	if len(c.taps) > 0 {
		return true
	}
	for _, k := range Keys {
		if c.held[k] {
			return true
		}
	}
	return false
}

// Quit reports whether a Quit event has been handled.
func (c *Controller) Quit() bool {
	return c.quit
}

func valid(k Key) bool {
	return k > KeyNone && int(k) <= len(Keys)
}
