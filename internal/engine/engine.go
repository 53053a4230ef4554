package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smazurov/lightnode/internal/events"
	"github.com/smazurov/lightnode/internal/lights"
	"github.com/smazurov/lightnode/internal/logging"
	"github.com/smazurov/lightnode/internal/metrics"
	"github.com/smazurov/lightnode/internal/pixel"
)

const (
	defaultPollInterval = 10 * time.Millisecond
	defaultQueueSize    = 64
)

// Options configures an Engine.
type Options struct {
	Driver pixel.Driver

	// PixelCount, when positive, is passed to Driver.Initialize by Run.
	PixelCount int
	// Brightness is applied with Driver.SetBrightness by Run. Zero leaves
	// the driver's default.
	Brightness float64

	// PollInterval is the wait between ticks. Default 10ms.
	PollInterval time.Duration
	// QueueSize bounds pending commands. Default 64.
	QueueSize int

	Initial  lights.ParameterSet
	EventBus *events.Bus
	Logger   logging.Logger
}

// Engine drives the render loop. Notify may be called from any goroutine;
// Run must be called exactly once.
type Engine struct {
	driver     pixel.Driver
	pixelCount int
	brightness float64
	poll       time.Duration
	commands   chan Command
	bus        *events.Bus
	logger     logging.Logger

	// params is owned by the Run goroutine.
	params   lights.ParameterSet
	snapshot atomic.Pointer[lights.ParameterSet]
	state    atomic.Value
	done     chan struct{}

	// notifyMu serialises the stopQueued check with the send.
	notifyMu   sync.Mutex
	stopQueued bool
}

// New creates an engine in the idle state.
func New(opts Options) *Engine {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger("engine")
	}

	e := &Engine{
		driver:     opts.Driver,
		pixelCount: opts.PixelCount,
		brightness: opts.Brightness,
		poll:       opts.PollInterval,
		commands:   make(chan Command, opts.QueueSize),
		bus:        opts.EventBus,
		logger:     opts.Logger,
		params:     opts.Initial,
		done:       make(chan struct{}),
	}
	e.state.Store(StateIdle)
	e.publishSnapshot()
	return e
}

// Notify queues cmd for the next tick without blocking. Once a Stop has
// been queued every later command fails with ErrStopped.
func (e *Engine) Notify(cmd Command) error {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if e.stopQueued {
		return ErrStopped
	}
	if s := e.State(); s == StateStopping || s == StateStopped {
		return ErrStopped
	}
	select {
	case e.commands <- cmd:
		if cmd.Kind == Stop {
			e.stopQueued = true
		}
		return nil
	default:
		return ErrQueueFull
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state.Load().(State)
}

// Parameters returns the parameters applied by the most recent tick.
func (e *Engine) Parameters() lights.ParameterSet {
	return *e.snapshot.Load()
}

// Done is closed when Run returns.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Run initializes the driver and renders until a Stop command arrives or
// ctx is cancelled. A driver failure ends the loop with an error.
func (e *Engine) Run(ctx context.Context) (err error) {
	if !e.state.CompareAndSwap(StateIdle, StateRunning) {
		return ErrAlreadyStarted
	}
	defer close(e.done)
	e.announce(StateIdle, StateRunning)

	defer func() {
		if err != nil {
			e.setState(StateStopped)
		}
	}()

	if e.pixelCount > 0 {
		if err := e.driver.Initialize(e.pixelCount); err != nil {
			return fmt.Errorf("failed to initialize driver: %w", err)
		}
	}
	if e.brightness > 0 {
		e.driver.SetBrightness(e.brightness)
	}
	e.logger.Info("Pattern engine running", "poll_interval", e.poll)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			e.params.Stop = true
		case <-timer.C:
		}

		start := time.Now()
		e.drain()

		if e.params.Stop {
			return e.halt()
		}
		if err := e.render(); err != nil {
			return err
		}
		metrics.ObserveTick(time.Since(start))
		timer.Reset(e.poll)
	}
}

// drain applies every pending command in arrival order.
func (e *Engine) drain() {
	applied := 0
	for {
		select {
		case cmd := <-e.commands:
			if err := cmd.Validate(); err != nil {
				e.logger.Warn("Dropping invalid command", "command", cmd.String(), "error", err)
				continue
			}
			cmd.apply(&e.params)
			applied++
			metrics.IncCommand(cmd.Kind.String())
			e.logger.Debug("Command applied", "command", cmd.String())
		default:
			if applied > 0 {
				e.publishSnapshot()
				e.bus.Publish(events.ParametersAppliedEvent{
					Parameters: e.params,
					Commands:   applied,
					Timestamp:  time.Now().Format(time.RFC3339),
				})
			}
			return
		}
	}
}

func (e *Engine) render() error {
	frame, err := e.params.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve parameters: %w", err)
	}

	switch frame.Pattern {
	case lights.Bars:
		err = e.driver.Bars(frame.Scheme, frame.Width, frame.Interval)
	case lights.Gradient:
		err = e.driver.Gradient(frame.Scheme, frame.Width, frame.Interval)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", frame.Pattern, err)
	}
	if err := e.driver.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// halt clears the strip and enters the terminal state.
func (e *Engine) halt() error {
	e.setState(StateStopping)

	err := e.driver.Clear()
	if err == nil {
		err = e.driver.Present()
	}

	e.setState(StateStopped)
	if err != nil {
		return fmt.Errorf("failed to clear strip: %w", err)
	}
	e.logger.Info("Pattern engine stopped")
	return nil
}

func (e *Engine) setState(to State) {
	from := e.state.Swap(to).(State)
	if from != to {
		e.announce(from, to)
	}
}

func (e *Engine) announce(from, to State) {
	metrics.SetEngineState(string(to))
	e.logger.Debug("Engine state changed", "from", from, "to", to)
	e.bus.Publish(events.EngineStateChangedEvent{
		From:      string(from),
		To:        string(to),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (e *Engine) publishSnapshot() {
	p := e.params
	e.snapshot.Store(&p)
	metrics.SetParameter("scheme", p.Scheme)
	metrics.SetParameter("pattern", p.Pattern)
	metrics.SetParameter("width", p.Width)
	metrics.SetParameter("speed", p.Speed)
}
