package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/lightnode/cmd"
	"github.com/smazurov/lightnode/internal/engine"
	"github.com/smazurov/lightnode/internal/lights"
)

func testOptions() *Options {
	return &Options{
		ServerAddress:      "127.0.0.1",
		ServerPort:         0,
		ServerRoot:         "",
		ServerReadTimeout:  "1s",
		StripDevice:        "noop",
		StripPixels:        24,
		StripBrightness:    40,
		EnginePollInterval: "5ms",
		EngineQueueSize:    8,
		LoggingLevel:       "error",
		LoggingFormat:      "text",
	}
}

func TestParseSettings(t *testing.T) {
	cfg, err := parseSettings(testOptions())
	if err != nil {
		t.Fatalf("parseSettings() error = %v", err)
	}
	if cfg.listenAddr != "127.0.0.1:0" {
		t.Errorf("listenAddr = %q", cfg.listenAddr)
	}
	if cfg.brightness != 0.4 {
		t.Errorf("brightness = %v, want 0.4", cfg.brightness)
	}
	if cfg.pollInterval != 5*time.Millisecond || cfg.readTimeout != time.Second {
		t.Errorf("durations = %v / %v", cfg.pollInterval, cfg.readTimeout)
	}

	bad := []func(*Options){
		func(o *Options) { o.ServerReadTimeout = "soon" },
		func(o *Options) { o.EnginePollInterval = "" },
		func(o *Options) { o.StripBrightness = 101 },
		func(o *Options) { o.StripPixels = 0 },
	}
	for i, mutate := range bad {
		opts := testOptions()
		mutate(opts)
		if _, err := parseSettings(opts); err == nil {
			t.Errorf("case %d: parseSettings() accepted invalid options %+v", i, opts)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		in   lights.ParameterSet
		want string
	}{
		{lights.ParameterSet{}, "incandescent bars, width 0, speed 0"},
		{lights.ParameterSet{Scheme: lights.SchemeChristmas, Pattern: 1, Width: 2, Speed: 3}, "christmas gradient, width 2, speed 3"},
		{lights.ParameterSet{Scheme: 42}, "42 bars, width 0, speed 0"},
		{lights.ParameterSet{Stop: true}, "stopped"},
	}
	for _, tt := range tests {
		if got := describe(tt.in); got != tt.want {
			t.Errorf("describe(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDaemon_StopCommandEndsRun(t *testing.T) {
	d, err := newDaemon(testOptions())
	if err != nil {
		t.Fatal(err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- d.run(context.Background()) }()

	addr := waitForAddr(t, d)

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/app.js") {
		t.Errorf("GET / = %d %q, want the built-in control page", resp.StatusCode, body)
	}

	if err := cmd.SendCommand(context.Background(), http.DefaultClient, addr, "scheme", 5); err != nil {
		t.Fatalf("scheme: %v", err)
	}
	if err := cmd.SendCommand(context.Background(), http.DefaultClient, addr, "stop", 0); err != nil {
		t.Fatalf("stop: %v", err)
	}

	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after stop")
	}

	if got := d.engine.State(); got != engine.StateStopped {
		t.Errorf("engine state = %v, want stopped", got)
	}
	if conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		conn.Close()
		t.Error("control server still accepting after stop")
	}
}

func TestDaemon_ContextCancel(t *testing.T) {
	d, err := newDaemon(testOptions())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- d.run(ctx) }()
	waitForAddr(t, d)

	cancel()
	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	d.shutdown()
}

func TestDaemon_BadDevice(t *testing.T) {
	opts := testOptions()
	opts.StripDevice = "laser"
	d, err := newDaemon(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.run(context.Background()); err == nil {
		t.Fatal("run() with an unknown device should fail")
	}
}

func waitForAddr(t *testing.T, d *daemon) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if addr := d.controlAddr(); addr != nil {
			return addr.String()
		}
		if time.Now().After(deadline) {
			t.Fatal("control server did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
