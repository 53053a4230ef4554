package engine

import (
	"errors"
	"fmt"

	"github.com/smazurov/lightnode/internal/lights"
)

var (
	// ErrQueueFull is returned by Notify when the command channel is full.
	ErrQueueFull = errors.New("engine command queue full")
	// ErrStopped is returned by Notify once the engine has stopped.
	ErrStopped = errors.New("engine stopped")
	// ErrUnknownCommand is returned for command names ParseCommand does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrAlreadyStarted is returned when Run is called twice.
	ErrAlreadyStarted = errors.New("engine already started")
)

// CommandKind tags a Command.
type CommandKind int

// Command kinds, one per ParameterSet field plus Stop.
const (
	SetScheme CommandKind = iota
	SetPattern
	SetWidth
	SetSpeed
	Stop
)

var commandNames = map[string]CommandKind{
	"scheme":  SetScheme,
	"pattern": SetPattern,
	"width":   SetWidth,
	"speed":   SetSpeed,
	"stop":    Stop,
}

func (k CommandKind) String() string {
	switch k {
	case SetScheme:
		return "scheme"
	case SetPattern:
		return "pattern"
	case SetWidth:
		return "width"
	case SetSpeed:
		return "speed"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// Command is a single parameter change sent to the engine.
type Command struct {
	Kind  CommandKind
	Value int
}

func (c Command) String() string {
	if c.Kind == Stop {
		return "stop"
	}
	return fmt.Sprintf("%s=%d", c.Kind, c.Value)
}

// ParseCommand builds a validated Command from a control-surface name and
// argument. The argument of stop is accepted but ignored.
func ParseCommand(name string, arg int) (Command, error) {
	kind, ok := commandNames[name]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	cmd := Command{Kind: kind, Value: arg}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// Validate reports whether Value is within the table for Kind.
func (c Command) Validate() error {
	switch c.Kind {
	case SetScheme:
		return lights.ValidateScheme(c.Value)
	case SetPattern:
		return lights.ValidatePattern(c.Value)
	case SetWidth:
		return lights.ValidateWidth(c.Value)
	case SetSpeed:
		return lights.ValidateSpeed(c.Value)
	case Stop:
		return nil
	default:
		return fmt.Errorf("%w %s", ErrUnknownCommand, c.Kind)
	}
}

// apply writes c into p. Stop is latched.
func (c Command) apply(p *lights.ParameterSet) {
	switch c.Kind {
	case SetScheme:
		p.Scheme = c.Value
	case SetPattern:
		p.Pattern = c.Value
	case SetWidth:
		p.Width = c.Value
	case SetSpeed:
		p.Speed = c.Value
	case Stop:
		p.Stop = true
	}
}
