package envutil

import (
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	t.Setenv("NT_TEST_INT", "42")
	if got := Int("NT_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("Int: want=42 got=%d", got)
	}
	t.Setenv("NT_TEST_INT", "nope")
	if got := Int("NT_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("Int fallback: want=7 got=%d", got)
	}
	if got := Int("NT_TEST_INT_MISSING", 9, nil); got != 9 {
		t.Fatalf("Int missing: want=9 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("NT_TEST_BOOL", "on")
	if !Bool("NT_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: want=true")
	}
	t.Setenv("NT_TEST_BOOL", "maybe")
	if Bool("NT_TEST_BOOL", false, nil) {
		t.Fatalf("Bool fallback: want=false")
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("NT_TEST_DUR", "90")
	if got := Duration("NT_TEST_DUR", time.Minute, nil); got != 90*time.Second {
		t.Fatalf("Duration seconds: want=90s got=%s", got)
	}
	t.Setenv("NT_TEST_DUR", "2h")
	if got := Duration("NT_TEST_DUR", time.Minute, nil); got != 2*time.Hour {
		t.Fatalf("Duration: want=2h got=%s", got)
	}
}

func TestListAndString(t *testing.T) {
	t.Setenv("NT_TEST_LIST", " a, ,b ")
	got := List("NT_TEST_LIST", nil, nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: want=[a b] got=%v", got)
	}
	t.Setenv("NT_TEST_STR", "   ")
	if got := String("NT_TEST_STR", "def", nil); got != "def" {
		t.Fatalf("String blank: want=def got=%q", got)
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("NT_TEST_FLOAT", "0.25")
	if got := Float("NT_TEST_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("Float: want=0.25 got=%v", got)
	}
	t.Setenv("NT_TEST_FLOAT", "warm")
	if got := Float("NT_TEST_FLOAT", 0.7, nil); got != 0.7 {
		t.Fatalf("Float fallback: want=0.7 got=%v", got)
	}
}
