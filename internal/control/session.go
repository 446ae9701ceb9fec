package control

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"MaskBoard/internal/export"
	"MaskBoard/internal/imageload"
	"MaskBoard/internal/logging"
	"MaskBoard/internal/state"
)

// ErrUninitializedSurface is returned when the session is used before a
// rendering surface has been attached.
var ErrUninitializedSurface = errors.New("rendering surface not initialized")

// Surface receives a full snapshot of the mask after every change: Clear,
// then AddShape for each finalized polygon and finally the open one, then
// Draw. Shapes are copies owned by the surface.
type Surface interface {
	Clear()
	AddShape(p state.Polygon)
	Draw()
}

// Backdrop is implemented by surfaces that can show the background image.
// A nil image removes it.
type Backdrop interface {
	SetBackground(img image.Image, at image.Rectangle)
}

// Surfaces fans a snapshot out to several surfaces.
type Surfaces []Surface

func (ss Surfaces) Clear() {
	for _, s := range ss {
		s.Clear()
	}
}

func (ss Surfaces) AddShape(p state.Polygon) {
	for _, s := range ss {
		s.AddShape(p.Clone())
	}
}

func (ss Surfaces) Draw() {
	for _, s := range ss {
		s.Draw()
	}
}

func (ss Surfaces) SetBackground(img image.Image, at image.Rectangle) {
	for _, s := range ss {
		if b, ok := s.(Backdrop); ok {
			b.SetBackground(img, at)
		}
	}
}

type Options struct {
	ExportDir        string
	RasterFormat     export.Format
	ClearOnImageLoad bool
	Now              func() time.Time
}

// Session is one editing session over one stage: it owns the mask, the tool
// mode and the background, and pushes every change to the attached surface.
type Session struct {
	store   *state.Store
	ctrl    *Controller
	surface Surface
	opts    Options

	width, height int
	background    *imageload.Image
	placement     imageload.Placement
}

func NewSession(store *state.Store, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RasterFormat == "" {
		opts.RasterFormat = export.PNG
	}
	return &Session{
		store: store,
		ctrl:  NewController(store),
		opts:  opts,
	}
}

// Attach connects the rendering surface and sets the stage size. Until it
// is called every operation fails with ErrUninitializedSurface.
func (s *Session) Attach(surface Surface, width, height int) {
	s.surface = surface
	s.width, s.height = width, height
	logging.Debugf("[SESSION] Surface attached, stage %dx%d", width, height)
	s.sync()
}

// Resize changes the stage size and refits the background.
func (s *Session) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	if s.surface == nil {
		return
	}
	if s.background != nil {
		s.placement = imageload.Fit(width, height, s.background.Width(), s.background.Height())
		s.showBackground()
	}
	s.sync()
}

func (s *Session) Size() (int, int) { return s.width, s.height }
func (s *Session) Mode() Mode       { return s.ctrl.Mode() }

// Polygons returns the finalized polygons.
func (s *Session) Polygons() []state.Polygon { return s.store.Polygons() }

// Current returns the polygon being drawn, if any.
func (s *Session) Current() (state.Polygon, bool) { return s.store.Current() }

func (s *Session) ready(op string) error {
	if s.surface == nil {
		log.Printf("[SESSION] %s aborted: %v", op, ErrUninitializedSurface)
		return fmt.Errorf("%s: %w", op, ErrUninitializedSurface)
	}
	return nil
}

// Dispatch applies one input action. Polygon state errors are recovered
// here: the input is ignored and the session carries on.
func (s *Session) Dispatch(a Action) error {
	if err := s.ready(a.Kind.String()); err != nil {
		return err
	}
	switch a.Kind {
	case ActionClick:
		if err := s.ctrl.Click(a.Point); err != nil {
			if !errors.Is(err, state.ErrInvalidState) {
				return err
			}
			logging.Debugf("[SESSION] Ignored click: %v", err)
		}
	case ActionClose:
		if err := s.ctrl.Finish(); err != nil {
			return err
		}
	case ActionToggleMode:
		s.ctrl.ToggleMode()
	case ActionClear:
		s.ctrl.Clear()
	case ActionRemoveImage:
		s.RemoveImage()
	default:
		return fmt.Errorf("unknown action %d", a.Kind)
	}
	s.sync()
	return nil
}

// SetMode switches to m, going through the same path as the toggle key.
// Selecting the current mode does nothing.
func (s *Session) SetMode(m Mode) error {
	if err := s.ready("set mode"); err != nil {
		return err
	}
	if s.ctrl.Mode() == m {
		return nil
	}
	return s.Dispatch(Action{Kind: ActionToggleMode})
}

// HandleKey dispatches the action bound to key. Unbound keys are reported
// with ok false and do nothing.
func (s *Session) HandleKey(km Keymap, key string) (a Action, ok bool, err error) {
	if a, ok = km.Lookup(key); !ok {
		return Action{}, false, nil
	}
	return a, true, s.Dispatch(a)
}

// sync pushes the whole mask to the surface. Data only flows from the store
// to the surface, never back.
func (s *Session) sync() {
	if s.surface == nil {
		return
	}
	s.surface.Clear()
	for _, p := range s.store.Polygons() {
		s.surface.AddShape(p)
	}
	if cur, ok := s.store.Current(); ok {
		s.surface.AddShape(cur)
	}
	s.surface.Draw()
}

// ExportVector writes the finalized polygons as JSON and returns the file
// path. An empty mask yields export.ErrNothingToExport and no file.
func (s *Session) ExportVector() (string, error) {
	if err := s.ready("export vector"); err != nil {
		return "", err
	}
	data, err := export.ToJSON(s.store.Polygons())
	if err != nil {
		return "", err
	}
	return export.Write(s.opts.ExportDir, export.VectorName(s.opts.Now()), data)
}

// ExportRaster writes the binary mask at stage size. It always produces a
// file, all background when the mask is empty.
func (s *Session) ExportRaster() (string, error) {
	if err := s.ready("export raster"); err != nil {
		return "", err
	}
	data, err := export.ToBinaryRaster(s.store.Polygons(), s.width, s.height, s.opts.RasterFormat)
	if err != nil {
		return "", err
	}
	return export.Write(s.opts.ExportDir, export.RasterName(s.opts.RasterFormat), data)
}

// ExportPDF writes the finalized polygons as a one page PDF.
func (s *Session) ExportPDF() (string, error) {
	if err := s.ready("export pdf"); err != nil {
		return "", err
	}
	data, err := export.ToPDF(s.store.Polygons(), s.width, s.height)
	if err != nil {
		return "", err
	}
	return export.Write(s.opts.ExportDir, export.PDFName(s.opts.Now()), data)
}

// LoadImage decodes a new background and fits it to the stage. On failure
// the previous background stays.
func (s *Session) LoadImage(r io.Reader) (*imageload.Image, error) {
	if err := s.ready("load image"); err != nil {
		return nil, err
	}
	img, err := imageload.Decode(r)
	if err != nil {
		log.Printf("[SESSION] Loading image failed: %v", err)
		return nil, err
	}
	s.background = img
	s.placement = imageload.Fit(s.width, s.height, img.Width(), img.Height())
	s.showBackground()
	if s.opts.ClearOnImageLoad {
		s.ctrl.Clear()
	}
	s.sync()
	return img, nil
}

// Background returns the current background and where it sits.
func (s *Session) Background() (*imageload.Image, imageload.Placement, bool) {
	if s.background == nil {
		return nil, imageload.Placement{}, false
	}
	return s.background, s.placement, true
}

// RemoveImage drops the background. The mask is kept.
func (s *Session) RemoveImage() {
	s.background = nil
	s.placement = imageload.Placement{}
	s.showBackground()
	logging.Debugf("[SESSION] Background removed")
}

func (s *Session) showBackground() {
	b, ok := s.surface.(Backdrop)
	if !ok {
		return
	}
	if s.background == nil {
		b.SetBackground(nil, image.Rectangle{})
		return
	}
	b.SetBackground(imageload.Scale(s.background.Image, s.placement), s.placement.Rect())
}

// LoadMask replaces the mask with a previously exported JSON document.
func (s *Session) LoadMask(r io.Reader) (int, error) {
	if err := s.ready("load mask"); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read mask: %w", err)
	}
	polys, err := export.ParseJSON(data)
	if err != nil {
		return 0, err
	}
	s.store.Replace(polys)
	s.sync()
	return len(polys), nil
}
