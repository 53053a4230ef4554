// Package led drives the board's status LED so the lights' state can be read
// from the enclosure without a browser.
package led

// Status LED patterns understood by every Controller.
const (
	PatternSolid = "solid"
	PatternBlink = "blink"
	PatternOff   = "off"
)

// RoleStatus is the LED role the Manager drives.
const RoleStatus = "status"

// Controller abstracts LED hardware across different SBC boards.
type Controller interface {
	// Set puts the LED with the given role into pattern. Roles are
	// board-independent names mapped to the board's LEDs.
	Set(role string, pattern string) error
	// Available returns the roles supported by this controller.
	Available() []string
	// Patterns returns the patterns supported by this controller.
	Patterns() []string
}
