package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero(0, 0, 3, 4); got != 3 {
		t.Fatalf("got %v", got)
	}
	if got := FirstNonZero[uint64](); got != 0 {
		t.Fatalf("got %v", got)
	}
	if got := FirstNonZero("", "a"); got != "a" {
		t.Fatalf("got %v", got)
	}
}

func TestParseBool(t *testing.T) {
	for _, str := range []string{"true", "Yes", " on ", "1", "T"} {
		v, err := ParseBool(str)
		if err != nil || !v {
			t.Fatalf("%q: got %v %v", str, v, err)
		}
	}
	for _, str := range []string{"false", "NO", "off", "0"} {
		v, err := ParseBool(str)
		if err != nil || v {
			t.Fatalf("%q: got %v %v", str, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatal("should error")
	}
}
