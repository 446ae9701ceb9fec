package state

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"MaskBoard/internal/geom"
	"MaskBoard/internal/logging"
)

// ErrInvalidState is returned when a polygon operation does not fit the
// current drawing state, e.g. appending with nothing open.
var ErrInvalidState = errors.New("invalid polygon state")

// Store holds the finalized mask polygons, in insertion order, plus at most
// one open polygon.
//
// A Store has a single writer (the editor's event loop) and is not safe for
// concurrent use. Every accessor returns copies.
type Store struct {
	style     Style
	finalized []Polygon
	current   *Polygon
}

func NewStore(style Style) *Store {
	if style.Stroke == "" {
		style.Stroke = DefaultStyle.Stroke
	}
	if style.Fill == "" {
		style.Fill = DefaultStyle.Fill
	}
	return &Store{style: style}
}

// StartPolygon opens a new polygon at p.
func (s *Store) StartPolygon(p geom.Point) error {
	if s.current != nil {
		return fmt.Errorf("start polygon: %w: polygon %s still open", ErrInvalidState, s.current.ID)
	}
	s.current = &Polygon{
		ID:     uuid.NewString(),
		Points: []geom.Point{p},
		Stroke: s.style.Stroke,
		Fill:   s.style.Fill,
	}
	logging.Debugf("[STORE] Started polygon %s at (%.1f, %.1f)", s.current.ID, p.X, p.Y)
	return nil
}

// AppendPoint adds p to the open polygon. Repeated points are kept.
func (s *Store) AppendPoint(p geom.Point) error {
	if s.current == nil {
		return fmt.Errorf("append point: %w: no open polygon", ErrInvalidState)
	}
	s.current.Points = append(s.current.Points, p)
	return nil
}

// CloseCurrent finalizes the open polygon. The vertex count is not checked;
// consumers skip polygons that are too small to enclose anything.
func (s *Store) CloseCurrent() error {
	if s.current == nil {
		return fmt.Errorf("close polygon: %w: no open polygon", ErrInvalidState)
	}
	p := *s.current
	p.Closed = true
	s.finalized = append(s.finalized, p)
	s.current = nil
	logging.Debugf("[STORE] Closed polygon %s with %d points", p.ID, len(p.Points))
	return nil
}

// RemoveAt drops every finalized polygon containing p and returns how many
// were removed.
func (s *Store) RemoveAt(p geom.Point) int {
	kept := s.finalized[:0]
	removed := 0
	for _, poly := range s.finalized {
		if poly.Contains(p) {
			logging.Debugf("[STORE] Erased polygon %s", poly.ID)
			removed++
			continue
		}
		kept = append(kept, poly)
	}
	clear(s.finalized[len(kept):])
	s.finalized = kept
	return removed
}

// ClearAll removes every polygon, including the open one.
func (s *Store) ClearAll() {
	s.finalized = nil
	s.current = nil
	logging.Debugf("[STORE] Cleared mask")
}

// Replace discards the current contents and finalizes polys in order. Each
// polygon gets a fresh ID.
func (s *Store) Replace(polys []Polygon) {
	s.ClearAll()
	for _, p := range polys {
		p = p.Clone()
		p.ID = uuid.NewString()
		p.Closed = true
		s.finalized = append(s.finalized, p)
	}
	logging.Debugf("[STORE] Loaded %d polygons", len(polys))
}

// Polygons returns copies of the finalized polygons in insertion order.
func (s *Store) Polygons() []Polygon {
	out := make([]Polygon, 0, len(s.finalized))
	for _, p := range s.finalized {
		out = append(out, p.Clone())
	}
	return out
}

// Current returns a copy of the open polygon, if any.
func (s *Store) Current() (Polygon, bool) {
	if s.current == nil {
		return Polygon{}, false
	}
	return s.current.Clone(), true
}

func (s *Store) HasCurrent() bool { return s.current != nil }

// Len returns the number of finalized polygons.
func (s *Store) Len() int { return len(s.finalized) }

func (s *Store) Style() Style { return s.style }
