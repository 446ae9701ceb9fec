// Package control turns user input into mask edits and keeps the renderer
// in step with the mask.
package control

import (
	"errors"

	"MaskBoard/internal/geom"
	"MaskBoard/internal/logging"
	"MaskBoard/internal/state"
)

// Mode decides what a click does.
type Mode int

const (
	ModeDraw Mode = iota
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeErase:
		return "erase"
	}
	return "unknown"
}

// Controller applies clicks and commands to a Store according to the
// current tool mode.
type Controller struct {
	store *state.Store
	mode  Mode
}

func NewController(store *state.Store) *Controller {
	return &Controller{store: store, mode: ModeDraw}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) SetMode(m Mode) {
	c.mode = m
	logging.Debugf("[CONTROL] Mode set to %s", m)
}

// ToggleMode flips between draw and erase. An open polygon is left as it is;
// switching to erase mid-draw keeps it open until the user comes back to
// draw mode and closes it.
func (c *Controller) ToggleMode() Mode {
	if c.mode == ModeDraw {
		c.SetMode(ModeErase)
	} else {
		c.SetMode(ModeDraw)
	}
	return c.mode
}

// Click handles a primary click at p. In draw mode it starts a polygon or
// extends the open one; in erase mode it removes every polygon under p.
func (c *Controller) Click(p geom.Point) error {
	if c.mode == ModeErase {
		if n := c.store.RemoveAt(p); n > 0 {
			logging.Debugf("[CONTROL] Erased %d polygon(s) at (%.1f, %.1f)", n, p.X, p.Y)
		}
		return nil
	}
	if !c.store.HasCurrent() {
		return c.store.StartPolygon(p)
	}
	return c.store.AppendPoint(p)
}

// Finish closes the open polygon. With nothing open it does nothing.
func (c *Controller) Finish() error {
	if err := c.store.CloseCurrent(); err != nil {
		if errors.Is(err, state.ErrInvalidState) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Controller) Clear() {
	c.store.ClearAll()
}
