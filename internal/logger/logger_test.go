package logger

import (
	"bytes"
	"context"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/oggyb/mentormatch/internal/config"
)

// capture redirects the logger output to a buffer during f()
func capture(t *testing.T, f func()) string {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	f()
	return buf.String()
}

func logConfig(level, format, component string, source bool) *config.Config {
	c := &config.Config{}
	c.Log.Level = level
	c.Log.Format = format
	c.Log.Component = component
	c.Log.Source = source
	return c
}

func TestLogger_TextFormat(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("debug", "text", "test", false))
		Info("hello mentors", "key", "value")
	})

	if !strings.Contains(out, "hello mentors") {
		t.Errorf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("expected structured field, got: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("info", "json", "json_test", false))
		Info("json log", "foo", "bar")
	})

	if !strings.Contains(out, `"msg":"json log"`) {
		t.Errorf("expected JSON message, got: %s", out)
	}
	if !strings.Contains(out, `"component":"json_test"`) {
		t.Errorf("expected component in JSON, got: %s", out)
	}
	if !strings.Contains(out, `"foo":"bar"`) {
		t.Errorf("expected structured field in JSON, got: %s", out)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("error", "text", "", false))
		Info("should not appear")
		Error("should appear")
	})

	if strings.Contains(out, "should not appear") {
		t.Errorf("info log should not appear, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("error log should appear, got: %s", out)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("debug", "text", "", false))
		log := With("req_id", "123")
		log.Info("processing request")
	})

	if !strings.Contains(out, "req_id=123") {
		t.Errorf("expected req_id field, got: %s", out)
	}
}

func TestLogger_ContextRoundTrip(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("debug", "text", "", false))
		ctx := WithContext(context.Background(), With("request_id", "abc"))
		FromContext(ctx).Info("scoped")
		FromContext(context.Background()).Info("global")
	})

	if !strings.Contains(out, "request_id=abc") {
		t.Errorf("expected request-scoped field, got: %s", out)
	}
	if !strings.Contains(out, "global") {
		t.Errorf("expected fallback to global logger, got: %s", out)
	}
}

func TestLogger_IsDebug(t *testing.T) {
	capture(t, func() {
		InitFromConfig(logConfig("info", "text", "", false))
		if IsDebug() {
			t.Error("info level must not report debug")
		}
		InitFromConfig(logConfig("debug", "text", "", false))
		if !IsDebug() {
			t.Error("debug level must report debug")
		}
	})
}

func TestLogger_WithAttrsStacks(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("info", "text", "", false))
		ctx := WithAttrs(context.Background(), "request_id", "r1")
		ctx = WithAttrs(ctx, "user_id", 7)
		FromContext(ctx).Info("stacked")
	})

	if !strings.Contains(out, "request_id=r1") || !strings.Contains(out, "user_id=7") {
		t.Errorf("expected both scoped fields, got: %s", out)
	}
}

func TestLogger_TextTimeLayout(t *testing.T) {
	out := capture(t, func() {
		InitFromConfig(logConfig("info", "text", "", false))
		Info("stamped")
	})

	if !regexp.MustCompile(`time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"`).MatchString(out) {
		t.Errorf("expected compact text timestamp, got: %s", out)
	}
}
