package lights

import "fmt"

// Scheme is an ordered, non-empty palette identified by its registry index.
type Scheme struct {
	Name   string
	Colors []Color
}

// Len returns the number of colors in the palette.
func (s Scheme) Len() int { return len(s.Colors) }

// At returns the color at i, wrapping around the palette.
func (s Scheme) At(i int) Color {
	n := len(s.Colors)
	return s.Colors[((i%n)+n)%n]
}

// Registry indices. Order is part of the control protocol.
const (
	SchemeIncandescent = iota
	SchemeRGB
	SchemeChristmas
	SchemeHanukkah
	SchemeKwanzaa
	SchemeRainbow
	SchemeFire
)

var schemes = []Scheme{
	{Name: "incandescent", Colors: []Color{RGB(255, 140, 20), RGB(0, 0, 0)}},
	{Name: "rgb", Colors: []Color{RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255)}},
	{Name: "christmas", Colors: []Color{RGB(255, 0, 0), RGB(0, 255, 0)}},
	{Name: "hanukkah", Colors: []Color{RGB(0, 0, 255), RGB(255, 255, 255)}},
	{Name: "kwanzaa", Colors: []Color{RGB(255, 0, 0), RGB(0, 0, 0), RGB(0, 255, 0)}},
	{Name: "rainbow", Colors: []Color{
		RGB(255, 0, 0), RGB(255, 128, 0), RGB(255, 255, 0), RGB(0, 255, 0),
		RGB(0, 0, 255), RGB(128, 0, 255), RGB(255, 0, 255),
	}},
	{Name: "fire", Colors: []Color{RGB(255, 0, 0), RGB(255, 102, 0), RGB(255, 192, 0)}},
}

// SchemeCount returns the number of registered schemes.
func SchemeCount() int { return len(schemes) }

// SchemeAt returns the scheme registered at index i.
// The returned palette is a copy and may be modified by the caller.
func SchemeAt(i int) (Scheme, error) {
	if i < 0 || i >= len(schemes) {
		return Scheme{}, fmt.Errorf("%w: scheme %d (have %d)", ErrOutOfRange, i, len(schemes))
	}
	s := schemes[i]
	colors := make([]Color, len(s.Colors))
	copy(colors, s.Colors)
	return Scheme{Name: s.Name, Colors: colors}, nil
}

// Schemes returns a copy of the whole registry in index order.
func Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	for i := range schemes {
		out[i], _ = SchemeAt(i)
	}
	return out
}
