package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MaskBoard/internal/control"
)

// NewToolbar builds the editor's tool row. Every button goes through the
// editor so the same paths serve keyboard shortcuts and clicks.
func NewToolbar(e *Editor) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			e.setMode(control.ModeDraw)
		}), // Draw
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			e.setMode(control.ModeErase)
		}), // Eraser
		widget.NewToolbarAction(theme.ConfirmIcon(), func() {
			e.dispatch(control.Action{Kind: control.ActionClose})
		}), // Close polygon
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			e.dispatch(control.Action{Kind: control.ActionClear})
		}), // Clear mask
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), e.openImage),
		widget.NewToolbarAction(theme.CancelIcon(), func() {
			e.dispatch(control.Action{Kind: control.ActionRemoveImage})
		}), // Remove image
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), e.exportVector),
		widget.NewToolbarAction(theme.FileImageIcon(), e.exportRaster),
		widget.NewToolbarAction(theme.FileIcon(), e.exportPDF),
		widget.NewToolbarAction(theme.FileTextIcon(), e.openMask),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		e.modeLabel,
		tb,
		layout.NewSpacer(),
	)
}
