package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata_b.cue", "testdata_a.cue"}, testSchema)

	steps := First[int](loader, "max_steps")
	if steps != 200 {
		t.Fatalf("got %v", steps)
	}

	if v := First[string](loader, "nothing"); v != "" {
		t.Fatalf("got %v", v)
	}

}

func TestFirstOr(t *testing.T) {
	loader := NewLoader([]string{"testdata_b.cue"}, testSchema)
	if n := FirstOr(loader, "max_steps", 1); n != 200 {
		t.Fatalf("got %v", n)
	}
	if n := FirstOr(loader, "ports", []int{5}); len(n) != 1 || n[0] != 5 {
		t.Fatalf("got %v", n)
	}
}
