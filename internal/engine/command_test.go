package engine

import (
	"errors"
	"testing"

	"github.com/smazurov/lightnode/internal/lights"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		arg     int
		want    Command
		wantErr error
	}{
		{"scheme", 2, Command{Kind: SetScheme, Value: 2}, nil},
		{"pattern", 1, Command{Kind: SetPattern, Value: 1}, nil},
		{"width", 0, Command{Kind: SetWidth, Value: 0}, nil},
		{"speed", 3, Command{Kind: SetSpeed, Value: 3}, nil},
		{"stop", 0, Command{Kind: Stop, Value: 0}, nil},
		{"stop", 99, Command{Kind: Stop, Value: 99}, nil},
		{"bogus", 1, Command{}, ErrUnknownCommand},
		{"scheme", 7, Command{}, lights.ErrOutOfRange},
		{"pattern", 2, Command{}, lights.ErrOutOfRange},
		{"width", -1, Command{}, lights.ErrOutOfRange},
		{"speed", 4, Command{}, lights.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.name, tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseCommand(%q, %d) error = %v, want %v", tt.name, tt.arg, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q, %d) error: %v", tt.name, tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q, %d) = %+v, want %+v", tt.name, tt.arg, got, tt.want)
			}
		})
	}
}

func TestCommandApply(t *testing.T) {
	var p lights.ParameterSet
	for _, c := range []Command{
		{Kind: SetScheme, Value: 3},
		{Kind: SetPattern, Value: 1},
		{Kind: SetWidth, Value: 2},
		{Kind: SetSpeed, Value: 1},
		{Kind: Stop},
		{Kind: SetScheme, Value: 4},
	} {
		c.apply(&p)
	}
	want := lights.ParameterSet{Scheme: 4, Pattern: 1, Width: 2, Speed: 1, Stop: true}
	if p != want {
		t.Errorf("params = %+v, want %+v", p, want)
	}
}

func TestCommandString(t *testing.T) {
	if got := (Command{Kind: SetWidth, Value: 2}).String(); got != "width=2" {
		t.Errorf("String() = %q", got)
	}
	if got := (Command{Kind: Stop, Value: 5}).String(); got != "stop" {
		t.Errorf("String() = %q", got)
	}
	if got := CommandKind(9).String(); got != "command(9)" {
		t.Errorf("String() = %q", got)
	}
}
