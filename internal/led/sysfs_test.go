package led

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeLEDRoot creates a sysfs-like tree with one LED directory.
func fakeLEDRoot(t *testing.T, name string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func readLED(t *testing.T, root, name, file string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name, file))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestSysfsController_Set(t *testing.T) {
	tests := []struct {
		pattern    string
		trigger    string
		brightness string
	}{
		{PatternSolid, "none", "1"},
		{PatternBlink, "heartbeat", "1"},
		{PatternOff, "none", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root := fakeLEDRoot(t, "ACT")
			ctrl := newSysfs(root, map[string]string{RoleStatus: "ACT"})

			if err := ctrl.Set(RoleStatus, tt.pattern); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got := readLED(t, root, "ACT", "trigger"); got != tt.trigger {
				t.Errorf("trigger = %q, want %q", got, tt.trigger)
			}
			if got := readLED(t, root, "ACT", "brightness"); got != tt.brightness {
				t.Errorf("brightness = %q, want %q", got, tt.brightness)
			}
		})
	}
}

func TestSysfsController_SetErrors(t *testing.T) {
	root := fakeLEDRoot(t, "ACT")
	ctrl := newSysfs(root, map[string]string{RoleStatus: "ACT", "power": "PWR"})

	if err := ctrl.Set("nonexistent", PatternSolid); err == nil {
		t.Error("Set() with unknown role should return error")
	}
	if err := ctrl.Set("power", PatternSolid); err == nil {
		t.Error("Set() with missing sysfs directory should return error")
	}
	if err := ctrl.Set(RoleStatus, "disco"); err == nil {
		t.Error("Set() with unknown pattern should return error")
	}
}

func TestSysfsController_Available(t *testing.T) {
	ctrl := newSysfs(t.TempDir(), map[string]string{RoleStatus: "ACT", "power": "PWR"})
	if got, want := ctrl.Available(), []string{"power", RoleStatus}; !reflect.DeepEqual(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
	if got := ctrl.Patterns(); len(got) != 3 {
		t.Errorf("Patterns() = %v, want 3 patterns", got)
	}
}

func TestNoopController(t *testing.T) {
	ctrl := newNoop(testLogger())
	if err := ctrl.Set(RoleStatus, PatternSolid); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if roles := ctrl.Available(); len(roles) != 0 {
		t.Errorf("Available() = %v, want empty slice", roles)
	}
	if patterns := ctrl.Patterns(); len(patterns) != 0 {
		t.Errorf("Patterns() = %v, want empty slice", patterns)
	}
}

func TestNewForBoard(t *testing.T) {
	tests := []struct {
		model string
		led   string
	}{
		{"Raspberry Pi 4 Model B Rev 1.4", "ACT"},
		{"FriendlyElec NanoPC-T6", "sys_led"},
		{"Orange Pi 5", "green_led"},
		{"QEMU Virtual Machine", ""},
		{"unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			ctrl := newForBoard(tt.model, sysfsLEDPath, testLogger())
			s, ok := ctrl.(*sysfs)
			if tt.led == "" {
				if ok {
					t.Fatalf("got sysfs controller for %q, want no-op", tt.model)
				}
				return
			}
			if !ok {
				t.Fatalf("got %T for %q, want sysfs", ctrl, tt.model)
			}
			if s.leds[RoleStatus] != tt.led {
				t.Errorf("status LED = %q, want %q", s.leds[RoleStatus], tt.led)
			}
		})
	}
}

func TestDetectBoard(t *testing.T) {
	if model := detectBoard(); model == "" {
		t.Error("detectBoard() returned empty string")
	}
}
