package led

import (
	"sync"

	"github.com/smazurov/lightnode/internal/engine"
	"github.com/smazurov/lightnode/internal/events"
	"github.com/smazurov/lightnode/internal/logging"
)

// Manager mirrors the engine state on the status LED: solid while
// rendering, blinking once stopping or stopped, off while idle.
type Manager struct {
	controller  Controller
	eventBus    *events.Bus
	logger      logging.Logger
	unsubscribe func()

	mu      sync.Mutex
	pattern string
}

// NewManager creates a manager. Call Start to subscribe to engine events.
func NewManager(controller Controller, eventBus *events.Bus, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.GetLogger("led")
	}
	return &Manager{
		controller: controller,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Start sets the LED for the initial state and subscribes to state changes.
func (m *Manager) Start(initial engine.State) {
	m.apply(initial)
	m.unsubscribe = m.eventBus.Subscribe(func(e events.EngineStateChangedEvent) {
		m.apply(engine.State(e.To))
	})
	m.logger.Info("LED manager started")
}

// Stop unsubscribes from engine events. The LED keeps its last pattern.
func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.logger.Info("LED manager stopped")
}

// Pattern returns the pattern most recently applied.
func (m *Manager) Pattern() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pattern
}

func (m *Manager) apply(state engine.State) {
	pattern := patternFor(state)

	m.mu.Lock()
	defer m.mu.Unlock()
	if pattern == m.pattern {
		return
	}
	if err := m.controller.Set(RoleStatus, pattern); err != nil {
		m.logger.Warn("Failed to set status LED", "pattern", pattern, "error", err)
		return
	}
	m.pattern = pattern
	m.logger.Debug("Status LED updated", "state", string(state), "pattern", pattern)
}

func patternFor(state engine.State) string {
	switch state {
	case engine.StateRunning:
		return PatternSolid
	case engine.StateStopping, engine.StateStopped:
		return PatternBlink
	default:
		return PatternOff
	}
}
