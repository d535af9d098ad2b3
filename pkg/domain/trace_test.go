package domain

import (
	"errors"
	"testing"
)

func TestParseTraceMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TraceMode
		wantErr bool
	}{
		{in: "none", want: TraceNone},
		{in: "step", want: TraceStep},
		{in: "end-step", want: TraceEndStep},
		{in: "", want: TraceNone},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTraceMode(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("ParseTraceMode(%q) error = %v, want *ConfigError", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTraceMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTraceMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
