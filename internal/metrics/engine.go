// Package metrics provides Prometheus metrics for the pattern engine and the
// control surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineTicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lightnode",
		Subsystem: "engine",
		Name:      "ticks_total",
		Help:      "Render loop iterations",
	})

	engineRenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lightnode",
		Subsystem: "engine",
		Name:      "render_seconds",
		Help:      "Time spent rendering one tick, including pattern pacing",
		Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1},
	})

	engineCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lightnode",
		Subsystem: "engine",
		Name:      "commands_applied_total",
		Help:      "Parameter commands applied by the engine",
	}, []string{"command"})

	engineState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lightnode",
		Subsystem: "engine",
		Name:      "state",
		Help:      "1 for the engine's current state, 0 otherwise",
	}, []string{"state"})

	engineParameter = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lightnode",
		Subsystem: "engine",
		Name:      "parameter",
		Help:      "Active parameter index",
	}, []string{"name"})

	// FramesPresented counts frames written to the LED device.
	FramesPresented = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lightnode",
		Subsystem: "strip",
		Name:      "frames_total",
		Help:      "Frames written to the LED device",
	})
)

var engineStates = []string{"idle", "running", "stopping", "stopped"}

// ObserveTick records one render loop iteration.
func ObserveTick(d time.Duration) {
	engineTicks.Inc()
	engineRenderSeconds.Observe(d.Seconds())
}

// IncCommand counts an applied command.
func IncCommand(command string) {
	engineCommands.WithLabelValues(command).Inc()
}

// SetEngineState marks state as the only active engine state.
func SetEngineState(state string) {
	for _, s := range engineStates {
		v := 0.0
		if s == state {
			v = 1
		}
		engineState.WithLabelValues(s).Set(v)
	}
}

// SetParameter records the active index for a parameter.
func SetParameter(name string, index int) {
	engineParameter.WithLabelValues(name).Set(float64(index))
}
