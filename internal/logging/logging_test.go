package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetupFiltersAndMirrors(t *testing.T) {
	var console, file bytes.Buffer
	l := Setup(&console, &file, "warn")

	l.Info().Msg("quiet")
	l.Warn().Str("texture", "mars.png").Msg("texture unavailable")

	for name, buf := range map[string]*bytes.Buffer{"console": &console, "file": &file} {
		out := buf.String()
		if strings.Contains(out, "quiet") {
			t.Errorf("%s: info should be filtered", name)
		}
		if !strings.Contains(out, "texture unavailable") || !strings.Contains(out, "mars.png") {
			t.Errorf("%s: missing warn entry: %q", name, out)
		}
	}
	if strings.Contains(file.String(), "\x1b[") {
		t.Error("file output should be colorless")
	}
}

func TestSampled(t *testing.T) {
	var buf bytes.Buffer
	l := Sampled(zerolog.New(&buf))
	for i := 0; i < 50; i++ {
		l.Info().Msg("frame")
	}
	if n := strings.Count(buf.String(), "frame"); n >= 50 || n < 5 {
		t.Errorf("expected sampled output, got %d entries", n)
	}
}
