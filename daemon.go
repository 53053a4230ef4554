package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/smazurov/lightnode/internal/config"
	"github.com/smazurov/lightnode/internal/engine"
	"github.com/smazurov/lightnode/internal/events"
	"github.com/smazurov/lightnode/internal/led"
	"github.com/smazurov/lightnode/internal/lights"
	"github.com/smazurov/lightnode/internal/logging"
	"github.com/smazurov/lightnode/internal/metrics/exporters"
	"github.com/smazurov/lightnode/internal/pixel"
	"github.com/smazurov/lightnode/internal/server"
	"github.com/smazurov/lightnode/internal/systemd"
	"github.com/smazurov/lightnode/ui"
)

// engineStopTimeout bounds how long shutdown waits for the engine to clear
// the strip after a signal.
const engineStopTimeout = 5 * time.Second

// settings are Options after parsing and validation.
type settings struct {
	listenAddr   string
	root         string
	readTimeout  time.Duration
	device       pixel.DeviceConfig
	pixels       int
	brightness   float64
	pollInterval time.Duration
	queueSize    int
	metricsAddr  string
	statusLED    bool
	configPath   string
}

func parseSettings(opts *Options) (settings, error) {
	readTimeout, err := time.ParseDuration(opts.ServerReadTimeout)
	if err != nil {
		return settings{}, fmt.Errorf("invalid server read timeout %q: %w", opts.ServerReadTimeout, err)
	}
	poll, err := time.ParseDuration(opts.EnginePollInterval)
	if err != nil {
		return settings{}, fmt.Errorf("invalid engine poll interval %q: %w", opts.EnginePollInterval, err)
	}
	if opts.StripBrightness < 0 || opts.StripBrightness > 100 {
		return settings{}, fmt.Errorf("strip brightness %d%% outside 0-100", opts.StripBrightness)
	}
	if opts.StripPixels <= 0 {
		return settings{}, fmt.Errorf("strip needs at least one pixel, got %d", opts.StripPixels)
	}

	return settings{
		listenAddr:  net.JoinHostPort(opts.ServerAddress, strconv.Itoa(opts.ServerPort)),
		root:        opts.ServerRoot,
		readTimeout: readTimeout,
		device: pixel.DeviceConfig{
			Kind:        opts.StripDevice,
			GPIOPin:     opts.StripGPIOPin,
			Framebuffer: opts.StripFramebuffer,
		},
		pixels:       opts.StripPixels,
		brightness:   float64(opts.StripBrightness) / 100,
		pollInterval: poll,
		queueSize:    opts.EngineQueueSize,
		metricsAddr:  opts.MetricsAddr,
		statusLED:    opts.FeaturesStatusLED,
		configPath:   opts.Config,
	}, nil
}

// daemon owns every long-running component of the controller.
type daemon struct {
	cfg    settings
	logger logging.Logger

	bus      *events.Bus
	strip    *pixel.Strip
	engine   *engine.Engine
	server   *server.Server
	metrics  *exporters.MetricsServer
	led      *led.Manager
	watcher  *config.Watcher[logging.Config]
	notifier *systemd.Notifier

	mu       sync.Mutex // guards startup against a concurrent shutdown
	cancel   context.CancelFunc
	runErr   chan error
	stopOnce sync.Once
}

func newDaemon(opts *Options) (*daemon, error) {
	cfg, err := parseSettings(opts)
	if err != nil {
		return nil, err
	}
	return &daemon{
		cfg:      cfg,
		logger:   logging.GetLogger("main"),
		notifier: systemd.NewNotifier(logging.GetLogger("systemd")),
		runErr:   make(chan error, 1),
	}, nil
}

// run starts all components and blocks until the engine stops, either by
// a stop command or by shutdown. It returns the engine's error.
func (d *daemon) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := d.start(ctx, cancel); err != nil {
		d.shutdown()
		return err
	}

	select {
	case <-d.engine.Done():
	case <-ctx.Done():
	}
	d.shutdown()

	select {
	case err := <-d.runErr:
		return err
	case <-time.After(engineStopTimeout):
		return errors.New("engine did not stop")
	}
}

func (d *daemon) start(ctx context.Context, cancel context.CancelFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancel = cancel
	d.bus = events.New()

	device, err := pixel.NewDevice(d.cfg.device, logging.GetLogger("pixel"))
	if err != nil {
		return fmt.Errorf("failed to open LED device: %w", err)
	}
	d.strip = pixel.NewStrip(device, logging.GetLogger("pixel"))

	d.engine = engine.New(engine.Options{
		Driver:       d.strip,
		PixelCount:   d.cfg.pixels,
		Brightness:   d.cfg.brightness,
		PollInterval: d.cfg.pollInterval,
		QueueSize:    d.cfg.queueSize,
		EventBus:     d.bus,
		Logger:       logging.GetLogger("engine"),
	})

	if d.cfg.statusLED {
		d.led = led.NewManager(led.New(logging.GetLogger("led")), d.bus, logging.GetLogger("led"))
		d.led.Start(d.engine.State())
	}

	d.bus.Subscribe(func(e events.ParametersAppliedEvent) {
		d.notifier.Status(describe(e.Parameters))
	})

	go func() {
		d.runErr <- d.engine.Run(ctx)
	}()

	if d.cfg.metricsAddr != "" {
		d.metrics = exporters.NewMetricsServer(d.cfg.metricsAddr, logging.GetLogger("metrics"))
		if err := d.metrics.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	router := server.NewRouter(d.engine, server.NewStaticResolver(d.staticFS()), d.bus, logging.GetLogger("server"))
	d.server = server.New(server.Options{
		Router:      router,
		ReadTimeout: d.cfg.readTimeout,
		Logger:      logging.GetLogger("server"),
	})
	if err := d.server.Start(d.cfg.listenAddr); err != nil {
		return fmt.Errorf("failed to start control server: %w", err)
	}

	d.watchConfig()

	go d.notifier.Watchdog(ctx)
	d.notifier.Ready()
	d.notifier.Status(describe(d.engine.Parameters()))
	return nil
}

// staticFS serves the configured root, or the built-in page when the root
// is unset or missing.
func (d *daemon) staticFS() fs.FS {
	if d.cfg.root != "" {
		if info, err := os.Stat(d.cfg.root); err == nil && info.IsDir() {
			d.logger.Info("Serving static files", "root", d.cfg.root)
			return os.DirFS(d.cfg.root)
		}
		d.logger.Warn("Static root not found, serving built-in control page", "root", d.cfg.root)
	}
	return ui.FS()
}

func (d *daemon) watchConfig() {
	if d.cfg.configPath == "" {
		return
	}
	if _, err := os.Stat(d.cfg.configPath); err != nil {
		return
	}
	w, err := config.WatchLogging(d.cfg.configPath, logging.GetLogger("config"))
	if err != nil {
		d.logger.Warn("Config watcher disabled", "path", d.cfg.configPath, "error", err)
		return
	}
	d.watcher = w
}

// shutdown stops the engine, closes the listeners and releases the strip.
// Safe to call more than once and from any goroutine.
func (d *daemon) shutdown() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		d.notifier.Stopping()
		if d.cancel != nil {
			d.cancel()
		}

		if d.engine != nil {
			select {
			case <-d.engine.Done():
			case <-time.After(engineStopTimeout):
				d.logger.Warn("Engine did not stop in time")
			}
		}

		if d.server != nil {
			if err := d.server.Stop(); err != nil {
				d.logger.Error("Error stopping control server", "error", err)
			}
		}
		if d.metrics != nil {
			if err := d.metrics.Stop(); err != nil {
				d.logger.Error("Error stopping metrics server", "error", err)
			}
		}
		if d.watcher != nil {
			if err := d.watcher.Stop(); err != nil {
				d.logger.Warn("Error stopping config watcher", "error", err)
			}
		}
		if d.led != nil {
			d.led.Stop()
		}
		if d.strip != nil {
			if err := d.strip.Close(); err != nil {
				d.logger.Warn("Error closing LED device", "error", err)
			}
		}
		if d.bus != nil {
			if err := d.bus.Close(); err != nil {
				d.logger.Debug("Error closing event bus", "error", err)
			}
		}
		d.logger.Info("Shutdown complete")
	})
}

// describe renders parameters for the systemd status line.
func describe(p lights.ParameterSet) string {
	if p.Stop {
		return "stopped"
	}
	name := strconv.Itoa(p.Scheme)
	if s, err := lights.SchemeAt(p.Scheme); err == nil {
		name = s.Name
	}
	return fmt.Sprintf("%s %s, width %d, speed %d", name, lights.Pattern(p.Pattern), p.Width, p.Speed)
}

// controlAddr returns the control server's bound address once started.
func (d *daemon) controlAddr() net.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.server == nil {
		return nil
	}
	return d.server.Addr()
}
