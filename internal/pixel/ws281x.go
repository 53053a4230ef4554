//go:build ws281x

package pixel

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
	"github.com/smazurov/lightnode/internal/lights"
)

// ws281x drives a WS2812 strip from the Raspberry Pi PWM/PCM peripheral.
// Requires root and the rpi_ws281x C library.
type ws281x struct {
	pin int
	dev *ws2811.WS2811
}

func newWS281x(pin int) (Device, error) {
	return &ws281x{pin: pin}, nil
}

func (w *ws281x) Init(count int) error {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = w.pin
	opt.Channels[0].LedCount = count
	// Brightness is applied by Strip; keep the hardware scale at full.
	opt.Channels[0].Brightness = 255

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return fmt.Errorf("failed to create ws281x device: %w", err)
	}
	if err := dev.Init(); err != nil {
		return fmt.Errorf("failed to init ws281x on GPIO %d: %w", w.pin, err)
	}
	w.dev = dev
	return nil
}

func (w *ws281x) Write(pixels []lights.Color) error {
	leds := w.dev.Leds(0)
	for i := range leds {
		if i < len(pixels) {
			leds[i] = pixels[i].Uint32()
		} else {
			leds[i] = 0
		}
	}
	return w.dev.Render()
}

func (w *ws281x) Close() error {
	if w.dev != nil {
		w.dev.Fini()
		w.dev = nil
	}
	return nil
}
