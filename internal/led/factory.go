package led

import (
	"os"
	"strings"

	"github.com/smazurov/lightnode/internal/logging"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// boards maps a device tree model substring to the sysfs LED used for the
// status role.
var boards = []struct {
	model string
	led   string
}{
	{"Raspberry Pi", "ACT"},
	{"NanoPC-T6", "sys_led"},
	{"Orange Pi", "green_led"},
}

// New creates a controller for the detected board, falling back to a no-op
// controller when the board has no known status LED.
func New(logger logging.Logger) Controller {
	return newForBoard(detectBoard(), sysfsLEDPath, logger)
}

func newForBoard(model, root string, logger logging.Logger) Controller {
	if logger != nil {
		logger.Info("Detecting board for status LED", "board_model", model)
	}

	for _, b := range boards {
		if strings.Contains(model, b.model) {
			if logger != nil {
				logger.Info("Using sysfs status LED", "board", b.model, "led", b.led)
			}
			return newSysfs(root, map[string]string{RoleStatus: b.led})
		}
	}

	if logger != nil {
		logger.Info("No status LED support detected, using no-op controller", "board_model", model)
	}
	return newNoop(logger)
}

// detectBoard reads the device tree model to identify the board.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}
	// Device tree strings are NUL terminated.
	return strings.TrimRight(string(data), "\x00")
}
