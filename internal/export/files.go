package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// VectorName is the download name of a JSON export taken at t.
func VectorName(t time.Time) string {
	return fmt.Sprintf("maskjson%d.json", t.UnixMilli())
}

// RasterName is the download name of a binary mask image.
func RasterName(f Format) string {
	if f == "" {
		f = PNG
	}
	return "binary_mask" + f.Ext()
}

// PDFName is the download name of a PDF export taken at t.
func PDFName(t time.Time) string {
	return fmt.Sprintf("mask%d.pdf", t.UnixMilli())
}

// Write stores data as dir/name, creating dir when needed, and returns the
// full path.
func Write(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	log.Printf("[EXPORT] Wrote %d bytes to %s", len(data), path)
	return path, nil
}
