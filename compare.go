package forbild

import (
	"fmt"
	"sort"
)

// Entry is a named fingerprint, usually keyed by file path.
type Entry struct {
	ID          string
	Fingerprint *Fingerprint
}

// Pair is the distance between two entries.
type Pair struct {
	A, B     string
	Distance float64
}

// EachPair calls fn for every pair (entries[i], entries[j]) with i < j, in
// order, measured with metric and entries[i] as the reference. Iteration
// stops at the first error from metric or fn.
func EachPair(entries []Entry, metric Metric, fn func(Pair) error) error {
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			d, err := metric(a.Fingerprint, b.Fingerprint)
			if err != nil {
				return fmt.Errorf("failed to compare %s and %s: %w", a.ID, b.ID, err)
			}
			if err := fn(Pair{A: a.ID, B: b.ID, Distance: d}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Nearest returns the entries whose Hamming distance to query is at most
// maxDistance, closest first. Ties are broken by entry order.
func Nearest(query *Fingerprint, entries []Entry, maxDistance int) []Pair {
	var out []Pair
	for _, e := range entries {
		d := HammingDistance(query, e.Fingerprint)
		if d > maxDistance {
			continue
		}
		out = append(out, Pair{B: e.ID, Distance: float64(d)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
