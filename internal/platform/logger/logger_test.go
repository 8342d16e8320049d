package logger

import (
	"strings"
	"testing"
)

func TestSanitizeRedactsSecrets(t *testing.T) {
	redactOnce.Do(func() { redactionEnabled = true })

	out := sanitizeKVs([]interface{}{
		"password", "hunter22",
		"session_token", "abc",
		"topic", "Algebra",
	})
	if out[1] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("token not redacted: %v", out[3])
	}
	if out[5] != "Algebra" {
		t.Fatalf("unexpected rewrite of plain value: %v", out[5])
	}
}

func TestSanitizeHashesIdentifiers(t *testing.T) {
	redactOnce.Do(func() { redactionEnabled = true })

	out := sanitizeKVs([]interface{}{"user_id", 42})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("expected hashed user id, got %v", out[1])
	}
	again := sanitizeKVs([]interface{}{"user_id", 42})
	if again[1] != got {
		t.Fatalf("hash not stable: %v vs %v", again[1], got)
	}
}

func TestSanitizeOddKeyValues(t *testing.T) {
	redactOnce.Do(func() { redactionEnabled = true })

	out := sanitizeKVs([]interface{}{"topic", "x", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}
