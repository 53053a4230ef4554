package pixel

import (
	"errors"
	"fmt"
	"time"

	"github.com/smazurov/lightnode/internal/lights"
	"github.com/smazurov/lightnode/internal/logging"
	"github.com/smazurov/lightnode/internal/metrics"
)

// ErrNotInitialized is returned when frames are drawn before Initialize.
var ErrNotInitialized = errors.New("strip not initialized")

// Strip implements Driver on top of a Device. It is not safe for concurrent
// use; the pattern engine is its only caller.
type Strip struct {
	device     Device
	logger     logging.Logger
	pixels     []lights.Color
	out        []lights.Color
	brightness float64
	offset     int
	sleep      func(time.Duration)
}

// NewStrip creates a strip that renders into device.
func NewStrip(device Device, logger logging.Logger) *Strip {
	return &Strip{
		device:     device,
		logger:     logger,
		brightness: 1,
		sleep:      time.Sleep,
	}
}

// Initialize opens the device for count pixels.
func (s *Strip) Initialize(count int) error {
	if count <= 0 {
		return fmt.Errorf("invalid pixel count %d", count)
	}
	if err := s.device.Init(count); err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}
	s.pixels = make([]lights.Color, count)
	s.out = make([]lights.Color, count)
	s.offset = 0
	if s.logger != nil {
		s.logger.Info("LED strip initialized", "pixels", count)
	}
	return nil
}

// SetBrightness clamps fraction into [0,1].
func (s *Strip) SetBrightness(fraction float64) {
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	s.brightness = fraction
}

// Brightness returns the current output scale.
func (s *Strip) Brightness() float64 {
	return s.brightness
}

// Bars draws repeating blocks of width pixels, one block per palette color.
func (s *Strip) Bars(scheme lights.Scheme, width int, interval time.Duration) error {
	if err := s.check(scheme, width); err != nil {
		return err
	}
	for i := range s.pixels {
		s.pixels[i] = scheme.At((i + s.offset) / width)
	}
	s.step(scheme.Len()*width, interval)
	return nil
}

// Gradient blends each palette color into the next over width pixels.
func (s *Strip) Gradient(scheme lights.Scheme, width int, interval time.Duration) error {
	if err := s.check(scheme, width); err != nil {
		return err
	}
	for i := range s.pixels {
		pos := i + s.offset
		seg := pos / width
		frac := float64(pos%width) / float64(width)
		s.pixels[i] = scheme.At(seg).Lerp(scheme.At(seg+1), frac)
	}
	s.step(scheme.Len()*width, interval)
	return nil
}

// Clear sets every pixel to black.
func (s *Strip) Clear() error {
	if s.pixels == nil {
		return ErrNotInitialized
	}
	clear(s.pixels)
	return nil
}

// Present scales the frame by brightness and writes it to the device.
func (s *Strip) Present() error {
	if s.pixels == nil {
		return ErrNotInitialized
	}
	for i, c := range s.pixels {
		s.out[i] = c.Scale(s.brightness)
	}
	if err := s.device.Write(s.out); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	metrics.FramesPresented.Inc()
	return nil
}

// Frame returns a copy of the unscaled frame.
func (s *Strip) Frame() []lights.Color {
	out := make([]lights.Color, len(s.pixels))
	copy(out, s.pixels)
	return out
}

// Close releases the device.
func (s *Strip) Close() error {
	return s.device.Close()
}

func (s *Strip) check(scheme lights.Scheme, width int) error {
	if s.pixels == nil {
		return ErrNotInitialized
	}
	if scheme.Len() == 0 {
		return fmt.Errorf("scheme %q has no colors", scheme.Name)
	}
	if width <= 0 {
		return fmt.Errorf("invalid width %d", width)
	}
	return nil
}

// step advances the animation one pixel and waits interval.
// A zero interval holds the pattern still.
func (s *Strip) step(period int, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.offset = (s.offset + 1) % period
	s.sleep(interval)
}
