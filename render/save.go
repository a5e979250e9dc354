package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gonum.org/v1/plot/vg/vgimg"
)

// writePNG rasterizes the canvas to path. The image is written to a
// uniquely named temp file in the target directory and renamed into
// place, so readers never observe a partially written figure.
func writePNG(c *vgimg.Canvas, path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create figure temp file: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode figure: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync figure: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close figure: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish figure: %w", err)
	}
	return nil
}
