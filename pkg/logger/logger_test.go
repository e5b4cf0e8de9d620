package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_StampsServiceField(t *testing.T) {
	Reset()
	var buf bytes.Buffer

	log := Init(Options{Service: "user-service", Output: &buf})
	log.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"user-service"`) {
		t.Fatalf("expected service field in output, got %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in output, got %s", out)
	}
}

func TestInit_FirstCallWins(t *testing.T) {
	Reset()
	var first, second bytes.Buffer

	Init(Options{Output: &first})
	log := Init(Options{Output: &second})
	log.Info().Msg("routed")

	if second.Len() != 0 {
		t.Fatalf("second Init must not reconfigure output: %s", second.String())
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("expected event on the original output, got %s", first.String())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic before Init")
		}
	}()
	Get()
}

func TestLevelFallback(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":       zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"trace":  zerolog.TraceLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Fatalf("level(%q) = %v, want %v", in, got, want)
		}
	}
}
