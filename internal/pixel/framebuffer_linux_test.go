//go:build linux

package pixel

import (
	"path/filepath"
	"testing"
)

func TestFramebuffer_DefaultPath(t *testing.T) {
	dev, err := newFramebuffer("")
	if err != nil {
		t.Fatal(err)
	}
	if got := dev.(*framebuffer).path; got != "/dev/fb0" {
		t.Errorf("path = %q, want /dev/fb0", got)
	}
}

func TestFramebuffer_CloseBeforeInit(t *testing.T) {
	dev, err := newFramebuffer("/dev/fb1")
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Close(); err != nil {
		t.Errorf("Close() before Init error = %v", err)
	}
	if err := dev.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestFramebuffer_InitMissingDevice(t *testing.T) {
	dev, err := newFramebuffer(filepath.Join(t.TempDir(), "fb9"))
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Init(24); err == nil {
		t.Error("Init() on a missing device should fail")
	}
	if err := dev.Close(); err != nil {
		t.Errorf("Close() after failed Init error = %v", err)
	}
}
