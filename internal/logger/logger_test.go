package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		wantNil bool
	}{
		{input: "debug"},
		{input: "info"},
		{input: "warn"},
		{input: "error"},
		{input: "", wantNil: true},
		{input: "loud", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			if tt.wantNil && got != nil {
				t.Errorf("parseLevel(%q) = %v, want nil", tt.input, *got)
			}
			if !tt.wantNil && got == nil {
				t.Errorf("parseLevel(%q) = nil, want a level", tt.input)
			}
		})
	}
}

func TestNewNopWith(t *testing.T) {
	log := NewNop().With(String("component", "test"))
	log.Info("discarded", Int("n", 1), Bool("ok", true))
	if err := log.Sync(); err != nil {
		t.Logf("Sync() = %v", err)
	}
}

func TestFromZapKeepsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core)).With(String("component", "catalog"))

	log.Debug("dropped")
	log.Info("entry added", String("id", "e1"))

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	ctx := logs.All()[0].ContextMap()
	if ctx["component"] != "catalog" || ctx["id"] != "e1" {
		t.Errorf("context = %v", ctx)
	}
}
