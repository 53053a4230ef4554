package lights

import (
	"fmt"
	"time"
)

// ParameterSet is the live selection the renderer reads at the start of
// every tick. The zero value is the boot state.
type ParameterSet struct {
	Scheme  int  `json:"scheme"`
	Pattern int  `json:"pattern"`
	Width   int  `json:"width"`
	Speed   int  `json:"speed"`
	Stop    bool `json:"stop"`
}

// Frame is a ParameterSet resolved through the lookup tables.
type Frame struct {
	Scheme   Scheme
	Pattern  Pattern
	Width    int
	Interval time.Duration
}

// ValidateScheme reports whether i is a registered scheme index.
func ValidateScheme(i int) error {
	if i < 0 || i >= len(schemes) {
		return fmt.Errorf("%w: scheme %d", ErrOutOfRange, i)
	}
	return nil
}

// ValidatePattern reports whether i names a pattern.
func ValidatePattern(i int) error {
	if i < 0 || i >= PatternCount {
		return fmt.Errorf("%w: pattern %d", ErrOutOfRange, i)
	}
	return nil
}

// ValidateWidth reports whether i is a width table index.
func ValidateWidth(i int) error {
	if i < 0 || i >= WidthCount {
		return fmt.Errorf("%w: width %d", ErrOutOfRange, i)
	}
	return nil
}

// ValidateSpeed reports whether i is a speed table index.
func ValidateSpeed(i int) error {
	if i < 0 || i >= SpeedCount {
		return fmt.Errorf("%w: speed %d", ErrOutOfRange, i)
	}
	return nil
}

// Resolve looks up the concrete scheme, width and interval for p.
func (p ParameterSet) Resolve() (Frame, error) {
	scheme, err := SchemeAt(p.Scheme)
	if err != nil {
		return Frame{}, err
	}
	if err := ValidatePattern(p.Pattern); err != nil {
		return Frame{}, err
	}
	pattern := Pattern(p.Pattern)
	width, err := Width(pattern, p.Width)
	if err != nil {
		return Frame{}, err
	}
	interval, err := Speed(p.Speed)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Scheme: scheme, Pattern: pattern, Width: width, Interval: interval}, nil
}
