package ui

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"MaskBoard/internal/config"
	"MaskBoard/internal/control"
	"MaskBoard/internal/export"
	"MaskBoard/internal/imageload"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Editor wires the fyne window to a session. It is the input adapter: fyne
// taps, keys and buttons become control actions.
type Editor struct {
	session *control.Session
	keys    control.Keymap

	window    fyne.Window
	board     *MaskCanvas
	status    *widget.Label
	modeLabel *widget.Label
}

// RunApp opens the editor window and blocks until it is closed. Extra
// surfaces (such as the live feed) receive the same snapshots as the canvas.
func RunApp(cfg config.Config, session *control.Session, extra ...control.Surface) {
	a := app.NewWithID("io.maskboard.editor")
	w := a.NewWindow("Mask Editor")
	w.Resize(fyne.NewSize(float32(cfg.Stage.Width), float32(cfg.Stage.Height)))

	e := &Editor{
		session:   session,
		keys:      control.NewKeymap(cfg.Keys.Close, cfg.Keys.Toggle, cfg.Keys.Clear),
		window:    w,
		board:     NewMaskCanvas(cfg.Stage.StrokeWidth),
		status:    widget.NewLabel("Ready"),
		modeLabel: widget.NewLabel(control.ModeDraw.String()),
	}

	surfaces := control.Surfaces{e.board}
	surfaces = append(surfaces, extra...)
	session.Attach(surfaces, cfg.Stage.Width, cfg.Stage.Height)

	e.board.OnAction = e.dispatch
	e.board.OnResize = session.Resize
	w.Canvas().SetOnTypedKey(e.typedKey)

	content := container.NewBorder(NewToolbar(e), e.status, nil, nil, e.board)
	w.SetContent(content)
	w.ShowAndRun()
}

func (e *Editor) typedKey(ev *fyne.KeyEvent) {
	a, ok, err := e.session.HandleKey(e.keys, string(ev.Name))
	if ok {
		e.report(a, err)
	}
}

func (e *Editor) dispatch(a control.Action) {
	e.report(a, e.session.Dispatch(a))
}

func (e *Editor) report(a control.Action, err error) {
	if err != nil {
		log.Printf("[UI] %s failed: %v", a.Kind, err)
		e.setStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	e.modeLabel.SetText(e.session.Mode().String())
	switch a.Kind {
	case control.ActionClose:
		e.setStatus(fmt.Sprintf("%d polygon(s) in mask", len(e.session.Polygons())))
	case control.ActionClear:
		e.setStatus("Mask cleared")
	case control.ActionToggleMode:
		e.setStatus("Mode: " + e.session.Mode().String())
	case control.ActionRemoveImage:
		e.setStatus("Image removed")
	}
}

func (e *Editor) setMode(m control.Mode) {
	e.report(control.Action{Kind: control.ActionToggleMode}, e.session.SetMode(m))
}

func (e *Editor) setStatus(text string) {
	fyne.Do(func() { e.status.SetText(text) })
}

func (e *Editor) exportVector() {
	path, err := e.session.ExportVector()
	if errors.Is(err, export.ErrNothingToExport) {
		dialog.ShowInformation("Export", "Nothing to export", e.window)
		return
	}
	e.reportExport(path, err)
}

func (e *Editor) exportRaster() {
	e.reportExport(e.session.ExportRaster())
}

func (e *Editor) exportPDF() {
	path, err := e.session.ExportPDF()
	if errors.Is(err, export.ErrNothingToExport) {
		dialog.ShowInformation("Export", "Nothing to export", e.window)
		return
	}
	e.reportExport(path, err)
}

func (e *Editor) reportExport(path string, err error) {
	if err != nil {
		log.Printf("[UI] Export failed: %v", err)
		dialog.ShowError(err, e.window)
		return
	}
	e.setStatus("Saved " + path)
}

func (e *Editor) openImage() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if rc == nil {
			e.setStatus("Please select an image file to upload.")
			return
		}
		defer rc.Close()

		img, err := e.session.LoadImage(rc)
		if err != nil {
			if errors.Is(err, imageload.ErrImageDecode) {
				dialog.ShowError(errors.New("failed to load image, please try again"), e.window)
			} else {
				dialog.ShowError(err, e.window)
			}
			return
		}
		e.setStatus(fmt.Sprintf("Loaded %s (%dx%d)", rc.URI().Name(), img.Width(), img.Height()))
	}, e.window)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

func (e *Editor) openMask() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()

		n, err := e.session.LoadMask(rc)
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		e.setStatus(fmt.Sprintf("Loaded %d polygon(s) from %s", n, rc.URI().Name()))
	}, e.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}
