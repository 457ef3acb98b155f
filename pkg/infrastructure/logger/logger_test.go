package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestZerologLogger_JSON(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := New("loader", Options{Level: "info", Format: "json", Out: &buf})

	l.Debugf("hidden %d", 1)
	l.With("scheduler").Infof("planned %d rows", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "planned 3 rows" {
		t.Errorf("unexpected message: %v", entry["message"])
	}
	if entry["component"] != "scheduler" {
		t.Errorf("unexpected component: %v", entry["component"])
	}
	if entry["level"] != "info" {
		t.Errorf("unexpected level: %v", entry["level"])
	}
}

func TestZerologLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New("test", Options{Level: "bogus", Format: "console", Out: &buf})
	l.Warnf("warn")
	l.Errorf("error")
	if !bytes.Contains(buf.Bytes(), []byte("warn")) {
		t.Errorf("expected console output, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Infof("nothing")
	l.With("x").Errorf("nothing")
}
