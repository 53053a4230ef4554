package lights

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange is returned when an index falls outside its lookup table.
var ErrOutOfRange = errors.New("index out of range")

// Pattern selects the animation algorithm.
type Pattern int

// Available patterns.
const (
	Bars Pattern = iota
	Gradient
)

func (p Pattern) String() string {
	switch p {
	case Bars:
		return "bars"
	case Gradient:
		return "gradient"
	default:
		return fmt.Sprintf("pattern(%d)", int(p))
	}
}

// PatternCount is the number of defined patterns.
const PatternCount = 2

var (
	barWidths      = [...]int{1, 3, 6}
	gradientWidths = [...]int{12, 6, 2}
	speedsMs       = [...]int{0, 500, 250, 50}
)

// WidthCount and SpeedCount are the sizes of the width and speed tables.
const (
	WidthCount = len(barWidths)
	SpeedCount = len(speedsMs)
)

// Width resolves a width index for the given pattern into a pixel count.
func Width(p Pattern, index int) (int, error) {
	if index < 0 || index >= WidthCount {
		return 0, fmt.Errorf("%w: width %d", ErrOutOfRange, index)
	}
	switch p {
	case Bars:
		return barWidths[index], nil
	case Gradient:
		return gradientWidths[index], nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, p)
	}
}

// Speed resolves a speed index into the renderer's step interval.
func Speed(index int) (time.Duration, error) {
	if index < 0 || index >= SpeedCount {
		return 0, fmt.Errorf("%w: speed %d", ErrOutOfRange, index)
	}
	return time.Duration(speedsMs[index]) * time.Millisecond, nil
}
