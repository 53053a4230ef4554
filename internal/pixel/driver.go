// Package pixel renders animation frames for an addressable LED strip and
// pushes them to a hardware (or simulated) device.
package pixel

import (
	"time"

	"github.com/smazurov/lightnode/internal/lights"
)

// Driver is the rendering surface consumed by the pattern engine.
// Calls are synchronous; Bars and Gradient pace themselves by interval.
type Driver interface {
	// Initialize allocates the frame for count pixels and opens the device.
	Initialize(count int) error

	// SetBrightness sets the output scale in [0,1].
	SetBrightness(fraction float64)

	// Bars fills the frame with repeating solid blocks of width pixels.
	Bars(scheme lights.Scheme, width int, interval time.Duration) error

	// Gradient fills the frame with colors blended over width pixels.
	Gradient(scheme lights.Scheme, width int, interval time.Duration) error

	// Clear blanks the frame.
	Clear() error

	// Present writes the current frame to the device.
	Present() error
}

// Device is a sink for complete frames.
type Device interface {
	Init(count int) error
	Write(pixels []lights.Color) error
	Close() error
}
