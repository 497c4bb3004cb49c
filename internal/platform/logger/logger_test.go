package logger

import (
	"bytes"
	"context"
	"testing"

	kit "residences/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"DEBUG":     zerolog.DebugLevel,
		"info":      zerolog.InfoLevel,
		" warning ": zerolog.WarnLevel,
		"warn":      zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"":          zerolog.InfoLevel,
		"loud":      zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestInit_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "residences-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Named("voice").Info().Msg("named-line")

	ctx := WithRequest(context.Background(), "req-1", "res-9")
	ctx = WithUser(ctx, "user-3")
	C(ctx).Info().Msg("ctx-line")
	C(context.Background()).Debug().Msg("bare-line")

	out := buf.String()
	for _, want := range []string{
		"named-line", `"component":"voice"`,
		"ctx-line", `"request_id":"req-1"`, `"residence_id":"res-9"`, `"user_id":"user-3"`,
		`"service":"residences-test"`, `"build":"test"`, "bare-line",
	} {
		kit.MustContain(t, out, want)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "3")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc" {
		t.Fatalf("unexpected options %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 3 {
		t.Fatalf("unexpected caller/sample %+v", opt)
	}
}

func TestWithUser_EmptyKeepsContext(t *testing.T) {
	ctx := context.Background()
	if WithUser(ctx, "") != ctx {
		t.Fatal("empty user must not wrap the context")
	}
}
