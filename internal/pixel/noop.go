package pixel

import (
	"sync"

	"github.com/smazurov/lightnode/internal/lights"
	"github.com/smazurov/lightnode/internal/logging"
)

// noop implements Device for hosts without an attached strip.
// It keeps the last frame so it can be inspected.
type noop struct {
	logger logging.Logger
	mu     sync.Mutex
	last   []lights.Color
	writes int
}

// newNoop creates a new no-op device
func newNoop(logger logging.Logger) *noop {
	return &noop{logger: logger}
}

func (n *noop) Init(count int) error {
	n.mu.Lock()
	n.last = make([]lights.Color, count)
	n.mu.Unlock()
	if n.logger != nil {
		n.logger.Debug("No LED hardware, frames are discarded (no-op)", "pixels", count)
	}
	return nil
}

func (n *noop) Write(pixels []lights.Color) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	copy(n.last, pixels)
	n.writes++
	return nil
}

func (n *noop) Close() error { return nil }

// Last returns a copy of the most recent frame and the write count.
func (n *noop) Last() ([]lights.Color, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]lights.Color, len(n.last))
	copy(out, n.last)
	return out, n.writes
}
