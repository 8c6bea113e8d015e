package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefaultEnv - Production environment wiring
// ---------------------------------------------------------------------------

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdout == nil {
		t.Error("Stdout is nil")
	}
	if env.Stderr == nil {
		t.Error("Stderr is nil")
	}
	if env.Getenv == nil {
		t.Error("Getenv is nil")
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection from flags
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     commonFlags
		wantDebug bool
		wantInfo  bool
	}{
		{"default", commonFlags{}, false, true},
		{"verbose", commonFlags{verbose: true}, true, true},
		{"quiet", commonFlags{quiet: true}, false, false},
		{"quiet wins over verbose", commonFlags{quiet: true, verbose: true}, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			env := &Environment{Stderr: &buf}
			logger := newLogger(env, tt.flags)

			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
