package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zerolog.Level
		wantOK bool
	}{
		{in: "debug", want: zerolog.DebugLevel, wantOK: true},
		{in: "INFO", want: zerolog.InfoLevel, wantOK: true},
		{in: "warning", want: zerolog.WarnLevel, wantOK: true},
		{in: "error", want: zerolog.ErrorLevel, wantOK: true},
		{in: "off", want: zerolog.Disabled, wantOK: true},
		{in: "chatty", want: zerolog.WarnLevel, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSetLevelFiltersEvents(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prev)
		SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetOutput(&buf)

	SetLevel("warn")
	Info().Msg("hidden message")
	Warn().Msg("shown message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info event logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown message") {
		t.Errorf("warn event missing from output: %q", out)
	}
}
