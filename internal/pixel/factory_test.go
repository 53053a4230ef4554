package pixel

import (
	"image"
	"log/slog"
	"os"
	"testing"

	"github.com/smazurov/lightnode/internal/lights"
)

func TestNewDevice_Noop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	for _, kind := range []string{"", KindNoop} {
		dev, err := NewDevice(DeviceConfig{Kind: kind}, logger)
		if err != nil {
			t.Fatalf("NewDevice(%q) error: %v", kind, err)
		}
		n, ok := dev.(*noop)
		if !ok {
			t.Fatalf("NewDevice(%q) = %T, want *noop", kind, dev)
		}
		if err := n.Init(2); err != nil {
			t.Fatal(err)
		}
		_ = n.Write([]lights.Color{lights.RGB(1, 2, 3), lights.RGB(4, 5, 6)})
		last, writes := n.Last()
		if writes != 1 || last[1] != lights.RGB(4, 5, 6) {
			t.Errorf("Last() = %v, %d", last, writes)
		}
	}
}

func TestNewDevice_Unknown(t *testing.T) {
	if _, err := NewDevice(DeviceConfig{Kind: "laser"}, nil); err == nil {
		t.Error("NewDevice() with unknown kind should fail")
	}
}

func TestCellLayout(t *testing.T) {
	cells := cellLayout(image.Rect(0, 0, 100, 40), 4)
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	if cells[0] != image.Rect(0, 7, 25, 32) {
		t.Errorf("cell 0 = %v", cells[0])
	}
	if cells[3].Max.X != 100 {
		t.Errorf("last cell ends at %d, want 100", cells[3].Max.X)
	}

	if got := cellLayout(image.Rect(0, 0, 10, 10), 0); got != nil {
		t.Errorf("cellLayout(count 0) = %v, want nil", got)
	}
}
