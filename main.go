package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/lightnode/cmd"
	"github.com/smazurov/lightnode/internal/config"
	"github.com/smazurov/lightnode/internal/logging"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"lightnode.toml"`

	// Control server settings
	ServerAddress     string `help:"Address to listen on (empty: all interfaces)" default:"" toml:"server.address" env:"SERVER_ADDRESS"`
	ServerPort        int    `help:"Port to listen on" short:"p" default:"8080" toml:"server.port" env:"SERVER_PORT"`
	ServerRoot        string `help:"Static file root (falls back to the built-in page when missing)" default:"www" toml:"server.root" env:"SERVER_ROOT"`
	ServerReadTimeout string `help:"Time a client has to send its request" default:"5s" toml:"server.read_timeout" env:"SERVER_READ_TIMEOUT"`

	// Strip settings
	StripDevice      string `help:"Output device (noop, ws281x, framebuffer)" default:"noop" toml:"strip.device" env:"STRIP_DEVICE"`
	StripPixels      int    `help:"Number of pixels on the strip" default:"24" toml:"strip.pixels" env:"STRIP_PIXELS"`
	StripBrightness  int    `help:"Brightness in percent" default:"40" toml:"strip.brightness" env:"STRIP_BRIGHTNESS"`
	StripGPIOPin     int    `help:"GPIO pin driving the ws281x data line" default:"18" toml:"strip.gpio_pin" env:"STRIP_GPIO_PIN"`
	StripFramebuffer string `help:"Framebuffer device for the preview output" default:"/dev/fb0" toml:"strip.framebuffer" env:"STRIP_FRAMEBUFFER"`

	// Engine settings
	EnginePollInterval string `help:"Wait between render ticks" default:"10ms" toml:"engine.poll_interval" env:"ENGINE_POLL_INTERVAL"`
	EngineQueueSize    int    `help:"Pending command limit" default:"64" toml:"engine.queue_size" env:"ENGINE_QUEUE_SIZE"`

	// Observability settings
	MetricsAddr string `help:"Prometheus listen address (empty disables)" default:":2112" toml:"metrics.addr" env:"METRICS_ADDR"`

	// Features settings
	FeaturesStatusLED bool `help:"Mirror engine state on the board status LED" default:"false" toml:"features.status_led" env:"FEATURES_STATUS_LED"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingEngine string `help:"Pattern engine logging level" default:"info" toml:"logging.engine" env:"LOGGING_ENGINE"`
	LoggingServer string `help:"Control server logging level" default:"info" toml:"logging.server" env:"LOGGING_SERVER"`
	LoggingPixel  string `help:"Pixel output logging level" default:"info" toml:"logging.pixel" env:"LOGGING_PIXEL"`
	LoggingLED    string `help:"Status LED logging level" default:"info" toml:"logging.led" env:"LOGGING_LED"`
}

func (o *Options) loggingConfig() logging.Config {
	return logging.Config{
		Level:  o.LoggingLevel,
		Format: o.LoggingFormat,
		Modules: map[string]string{
			"engine": o.LoggingEngine,
			"server": o.LoggingServer,
			"pixel":  o.LoggingPixel,
			"led":    o.LoggingLED,
		},
	}
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(opts.loggingConfig())
		logger := logging.GetLogger("main")

		d, err := newDaemon(opts)
		if err != nil {
			logger.Error("Failed to initialize", "error", err)
			os.Exit(1)
		}

		hooks.OnStart(func() {
			if runErr := d.run(context.Background()); runErr != nil {
				logger.Error("Stopped with error", "error", runErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			d.shutdown()
		})
	})

	cli.Root().Use = "lightnode"
	cli.Root().Short = "LED light strip controller with a browser control surface"

	cli.Root().AddCommand(cmd.CreateVersionCmd())
	cli.Root().AddCommand(cmd.CreateSchemesCmd())
	cli.Root().AddCommand(cmd.CreateSendCmd())
	cli.Root().AddCommand(cmd.CreateQRCmd())
	cli.Root().AddCommand(cmd.CreateUpdateCmd())

	cli.Run()
}
