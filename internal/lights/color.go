// Package lights defines the color schemes, patterns and lookup tables that
// drive the animation, plus the live parameter set selected over the network.
package lights

import "fmt"

// Color is a single RGB pixel value.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Uint32 packs the color as 0x00RRGGBB, the layout ws281x strips expect.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Lerp interpolates between c and to; t is clamped to [0,1].
func (c Color) Lerp(to Color, t float64) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}

// Scale multiplies every component by f in [0,1].
func (c Color) Scale(f float64) Color {
	return Color{}.Lerp(c, f)
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
