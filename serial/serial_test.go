package serial

import (
	"math"
	"testing"
)

func TestReached(t *testing.T) {
	tt := []struct {
		name            string
		current, target Serial
		want            bool
	}{
		{"nothing acknowledged", 0, 0, false},
		{"nothing acknowledged, wrapped target", 0, math.MaxUint32, false},
		{"exact", 7, 7, true},
		{"ahead", 9, 7, true},
		{"behind", 6, 7, false},
		{"wrapped past zero", 5, 4294967290, true},
		{"wrapped to one", 1, math.MaxUint32, true},
		{"far ahead, just below half", half - 1 + 10, 10, true},
		{"ahead by exactly half", half + 10, 10, false},
		{"ahead by more than half", half + 11, 10, false},
		{"target ahead by exactly half", 10, half + 10, false},
		{"target ahead by more than half", 10, half + 11, true},
	}
	for _, tc := range tt {
		if got := Reached(tc.current, tc.target); got != tc.want {
			t.Errorf("%s: Reached(%d, %d) = %v; want %v", tc.name, tc.current, tc.target, got, tc.want)
		}
	}
}

// A client may acknowledge a later serial without ever echoing the one an
// instruction waits for. That is accepted as reached.
func TestReachedSkippedSerial(t *testing.T) {
	target := Serial(41)
	for _, current := range []Serial{42, 50, 1000} {
		if !Reached(current, target) {
			t.Errorf("Reached(%d, %d) = false; want true for a skipped target", current, target)
		}
	}
}

func TestCounterWraps(t *testing.T) {
	c := NewCounter(math.MaxUint32 - 1)
	got := []Serial{c.Next(), c.Next(), c.Next()}
	want := []Serial{math.MaxUint32 - 1, math.MaxUint32, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Next() #%d = %d; want %d", i, got[i], want[i])
		}
	}
	if c.Last() != 0 {
		t.Errorf("Last() = %d; want 0", c.Last())
	}
}
