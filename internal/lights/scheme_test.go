package lights

import (
	"errors"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	want := []string{"incandescent", "rgb", "christmas", "hanukkah", "kwanzaa", "rainbow", "fire"}
	if SchemeCount() != len(want) {
		t.Fatalf("SchemeCount() = %d, want %d", SchemeCount(), len(want))
	}
	for i, name := range want {
		s, err := SchemeAt(i)
		if err != nil {
			t.Fatalf("SchemeAt(%d) error: %v", i, err)
		}
		if s.Name != name {
			t.Errorf("SchemeAt(%d).Name = %q, want %q", i, s.Name, name)
		}
		if s.Len() == 0 {
			t.Errorf("scheme %q is empty", name)
		}
	}
}

func TestChristmasPalette(t *testing.T) {
	s, err := SchemeAt(SchemeChristmas)
	if err != nil {
		t.Fatal(err)
	}
	want := []Color{RGB(255, 0, 0), RGB(0, 255, 0)}
	if len(s.Colors) != len(want) {
		t.Fatalf("christmas has %d colors, want %d", len(s.Colors), len(want))
	}
	for i := range want {
		if s.Colors[i] != want[i] {
			t.Errorf("christmas[%d] = %v, want %v", i, s.Colors[i], want[i])
		}
	}
}

func TestSchemeAt_ReturnsCopy(t *testing.T) {
	s, _ := SchemeAt(SchemeRGB)
	s.Colors[0] = RGB(1, 2, 3)

	again, _ := SchemeAt(SchemeRGB)
	if again.Colors[0] != RGB(255, 0, 0) {
		t.Errorf("registry was mutated through a returned scheme: %v", again.Colors[0])
	}
}

func TestSchemeAt_OutOfRange(t *testing.T) {
	if _, err := SchemeAt(SchemeCount()); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SchemeAt(%d) error = %v, want ErrOutOfRange", SchemeCount(), err)
	}
	if _, err := SchemeAt(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SchemeAt(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestSchemeAtWraps(t *testing.T) {
	s, _ := SchemeAt(SchemeChristmas)
	if s.At(2) != s.Colors[0] || s.At(-1) != s.Colors[1] {
		t.Errorf("At() did not wrap: At(2)=%v At(-1)=%v", s.At(2), s.At(-1))
	}
}

func TestColorLerp(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(200, 100, 50)
	if got := a.Lerp(b, 0.5); got != RGB(100, 50, 25) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
	if got := a.Lerp(b, -1); got != a {
		t.Errorf("Lerp(-1) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 2); got != b {
		t.Errorf("Lerp(2) = %v, want %v", got, b)
	}
	if got := RGB(255, 0, 0).Uint32(); got != 0xff0000 {
		t.Errorf("Uint32() = %#x", got)
	}
}
