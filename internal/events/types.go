package events

import "github.com/smazurov/lightnode/internal/lights"

// Event type constants for kelindar/event.
const (
	TypeEngineStateChanged uint32 = iota + 1
	TypeParametersApplied
	TypeRequestHandled
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// EngineStateChangedEvent is published on every pattern engine transition.
type EngineStateChangedEvent struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
}

// Type returns the event type identifier for EngineStateChangedEvent.
func (e EngineStateChangedEvent) Type() uint32 { return TypeEngineStateChanged }

// ParametersAppliedEvent is published when a tick applies pending commands.
type ParametersAppliedEvent struct {
	Parameters lights.ParameterSet `json:"parameters"`
	Commands   int                 `json:"commands"`
	Timestamp  string              `json:"timestamp"`
}

// Type returns the event type identifier for ParametersAppliedEvent.
func (e ParametersAppliedEvent) Type() uint32 { return TypeParametersApplied }

// RequestHandledEvent is published after a control request is answered.
type RequestHandledEvent struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Code   int    `json:"code"`
	Remote string `json:"remote"`
}

// Type returns the event type identifier for RequestHandledEvent.
func (e RequestHandledEvent) Type() uint32 { return TypeRequestHandled }
