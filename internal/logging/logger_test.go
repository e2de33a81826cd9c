package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		mode      string
		wantDebug bool
	}{
		{mode: "dev", wantDebug: true},
		{mode: "", wantDebug: true},
		{mode: "prod", wantDebug: false},
		{mode: "Production", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			logger, err := New(tt.mode)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}
