package forbild

import (
	"errors"
	"fmt"
	"testing"
)

func TestEachPair(t *testing.T) {
	a := gradientFingerprint(t)
	entries := []Entry{
		{ID: "a", Fingerprint: a},
		{ID: "b", Fingerprint: withFlippedBits(t, a, 1)},
		{ID: "c", Fingerprint: withFlippedBits(t, a, 1, 2)},
		{ID: "d", Fingerprint: withFlippedBits(t, a, 1, 2, 3)},
	}

	var got []Pair
	err := EachPair(entries, Hamming, func(p Pair) error {
		got = append(got, p)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []Pair{
		{"a", "b", 1}, {"a", "c", 2}, {"a", "d", 3},
		{"b", "c", 1}, {"b", "d", 2},
		{"c", "d", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d pairs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pair %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestEachPairErrors(t *testing.T) {
	a := gradientFingerprint(t)
	entries := []Entry{
		{ID: "hex", Fingerprint: withFlippedBits(t, a, 0)},
		{ID: "grid", Fingerprint: a},
	}

	err := EachPair(entries, Weighted, func(Pair) error { return nil })
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot, got %v", err)
	}

	stop := fmt.Errorf("stop")
	calls := 0
	entries = append(entries, Entry{ID: "third", Fingerprint: a})
	err = EachPair(entries, Hamming, func(Pair) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Expected to stop after one call, got %d calls and %v", calls, err)
	}
}

func TestEachPairSingle(t *testing.T) {
	called := false
	err := EachPair([]Entry{{ID: "only", Fingerprint: gradientFingerprint(t)}}, Hamming, func(Pair) error {
		called = true
		return nil
	})
	if err != nil || called {
		t.Error("Expected no pairs for a single entry")
	}
}

func TestNearest(t *testing.T) {
	a := gradientFingerprint(t)
	entries := []Entry{
		{ID: "far", Fingerprint: withFlippedBits(t, a, 1, 2, 3, 4)},
		{ID: "near", Fingerprint: withFlippedBits(t, a, 1)},
		{ID: "same", Fingerprint: a},
		{ID: "near2", Fingerprint: withFlippedBits(t, a, 9)},
	}

	got := Nearest(a, entries, 2)
	want := []string{"same", "near", "near2"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d matches, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].B != id {
			t.Errorf("Match %d: expected %s, got %s", i, id, got[i].B)
		}
	}
}

func TestNearestKeepsTieOrder(t *testing.T) {
	a := gradientFingerprint(t)
	var entries []Entry
	for i := 0; i < 20; i++ {
		entries = append(entries, Entry{ID: fmt.Sprintf("tie%02d", i), Fingerprint: withFlippedBits(t, a, i)})
	}
	entries = append(entries, Entry{ID: "exact", Fingerprint: a})

	got := Nearest(a, entries, 1)
	if len(got) != 21 || got[0].B != "exact" {
		t.Fatalf("Expected the exact match first among 21, got %d results", len(got))
	}
	for i, p := range got[1:] {
		if want := fmt.Sprintf("tie%02d", i); p.B != want {
			t.Errorf("Position %d: expected %s, got %s", i+1, want, p.B)
		}
	}
}
