package promptstyle

import (
	"strings"
	"testing"
)

func TestApplySystem(t *testing.T) {
	if got := ApplySystem("   ", "json"); got != "" {
		t.Fatalf("blank prompt: want empty got=%q", got)
	}

	out := ApplySystem("Create a quiz.", "json")
	if !strings.HasPrefix(out, marker) {
		t.Fatalf("missing marker: %q", out)
	}
	if !strings.Contains(out, "JSON object") || !strings.HasSuffix(out, "Create a quiz.") {
		t.Fatalf("unexpected json prompt: %q", out)
	}
	if again := ApplySystem(out, "json"); again != out {
		t.Fatalf("ApplySystem not idempotent")
	}

	text := ApplySystem("Tutor about algebra.", "text")
	if strings.Contains(text, "JSON object") {
		t.Fatalf("text mode should not ask for JSON: %q", text)
	}
}
