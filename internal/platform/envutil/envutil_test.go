package envutil

import (
	"testing"
	"time"
)

func TestParsers(t *testing.T) {
	t.Setenv("ENVUTIL_INT", "42")
	t.Setenv("ENVUTIL_BAD_INT", "forty")
	t.Setenv("ENVUTIL_BOOL", "yes")
	t.Setenv("ENVUTIL_SECS", "90")
	t.Setenv("ENVUTIL_DUR", "1500ms")
	t.Setenv("ENVUTIL_LIST", " a, ,b ")

	if got := Int("ENVUTIL_INT", 1, nil); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := Int("ENVUTIL_MISSING", 3, nil); got != 3 {
		t.Fatalf("Int missing: got %d", got)
	}
	if !Bool("ENVUTIL_BOOL", false, nil) {
		t.Fatalf("Bool: expected true")
	}
	if got := Duration("ENVUTIL_SECS", 0, nil); got != 90*time.Second {
		t.Fatalf("Duration secs: got %s", got)
	}
	if got := Duration("ENVUTIL_DUR", 0, nil); got != 1500*time.Millisecond {
		t.Fatalf("Duration: got %s", got)
	}
	got := List("ENVUTIL_LIST", nil, nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got %v", got)
	}
	if got := String("ENVUTIL_MISSING", "def", nil); got != "def" {
		t.Fatalf("String missing: got %q", got)
	}
}
