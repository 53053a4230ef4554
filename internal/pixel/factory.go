package pixel

import (
	"fmt"

	"github.com/smazurov/lightnode/internal/logging"
)

// Device kinds accepted by NewDevice.
const (
	KindNoop        = "noop"
	KindWS281x      = "ws281x"
	KindFramebuffer = "framebuffer"
)

// DeviceConfig selects and configures an output device.
type DeviceConfig struct {
	Kind        string
	GPIOPin     int
	Framebuffer string
}

// NewDevice creates the device named by cfg.Kind. An empty kind selects noop.
func NewDevice(cfg DeviceConfig, logger logging.Logger) (Device, error) {
	if logger != nil {
		logger.Info("Selecting LED output device", "kind", cfg.Kind)
	}

	switch cfg.Kind {
	case "", KindNoop:
		return newNoop(logger), nil
	case KindWS281x:
		return newWS281x(cfg.GPIOPin)
	case KindFramebuffer:
		return newFramebuffer(cfg.Framebuffer)
	default:
		return nil, fmt.Errorf("unknown LED device %q", cfg.Kind)
	}
}
