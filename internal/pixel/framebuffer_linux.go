//go:build linux

package pixel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	"github.com/smazurov/lightnode/internal/lights"
)

// framebuffer previews the strip on a Linux framebuffer as a row of cells.
type framebuffer struct {
	path  string
	dev   *fb.Device
	cells []image.Rectangle
}

func newFramebuffer(path string) (Device, error) {
	if path == "" {
		path = "/dev/fb0"
	}
	return &framebuffer{path: path}, nil
}

func (f *framebuffer) Init(count int) error {
	dev, err := fb.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open framebuffer %s: %w", f.path, err)
	}
	f.dev = dev
	f.cells = cellLayout(dev.Bounds(), count)
	draw.Draw(dev, dev.Bounds(), image.Black, image.Point{}, draw.Src)
	return nil
}

func (f *framebuffer) Write(pixels []lights.Color) error {
	for i, rect := range f.cells {
		if i >= len(pixels) {
			break
		}
		c := pixels[i]
		src := image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		draw.Draw(f.dev, rect, src, image.Point{}, draw.Src)
	}
	return nil
}

func (f *framebuffer) Close() error {
	if f.dev == nil {
		return nil
	}
	f.dev.Close()
	f.dev = nil
	return nil
}
