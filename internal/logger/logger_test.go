package logger

import "testing"

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{Level: "debug", Format: "json"}); err != nil {
		t.Fatalf("json logger: %v", err)
	}
	if _, err := New(Config{}); err != nil {
		t.Fatalf("default logger: %v", err)
	}
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
