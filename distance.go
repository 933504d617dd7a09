package forbild

import "math"

// WeightScale is the constant factor applied by WeightedDistance.
const WeightScale = 1000

// HammingDistance counts the bit positions at which a and b differ.
func HammingDistance(a, b *Fingerprint) int {
	d := 0
	for i := range a.bits {
		if a.bits[i] != b.bits[i] {
			d++
		}
	}
	return d
}

// WeightedDistance scales the Hamming distance by how far a's differing
// pixels sit from their quadrant medians relative to its agreeing pixels.
//
// Only a's snapshot is consulted; b contributes its bits alone, so the
// result is asymmetric. The deviation of a pixel is the absolute
// difference between its value and its quadrant median. The result is
//
//	mean(deviation over differing bits) / mean(deviation over identical bits)
//	    * WeightScale * HammingDistance(a, b)
//
// Bit-identical fingerprints return 0. If every identical bit sits exactly
// on its median the ratio, and therefore the result, is +Inf. A reference
// fingerprint without a snapshot yields ErrNoSnapshot.
func WeightedDistance(a, b *Fingerprint) (float64, error) {
	if !a.snapshot {
		return 0, ErrNoSnapshot
	}

	var sumSame, sumDiff float64
	same, diff := 0, 0
	for i := range a.bits {
		col, row := QuadrantOf(i).Halves()
		dev := math.Abs(float64(a.gray[i]) - float64(a.medians[col][row]))
		if a.bits[i] == b.bits[i] {
			sumSame += dev
			same++
		} else {
			sumDiff += dev
			diff++
		}
	}
	if same == HashLen {
		return 0, nil
	}
	if same == 0 {
		// Complementary patterns: no agreeing pixels to compare against.
		return math.Inf(1), nil
	}

	varSame := sumSame / float64(same)
	varDiff := sumDiff / float64(diff)
	if varSame == 0 {
		return math.Inf(1), nil
	}
	return varDiff / varSame * WeightScale * float64(diff), nil
}

// Metric measures the distance between a reference fingerprint and another.
type Metric func(a, b *Fingerprint) (float64, error)

// Hamming adapts HammingDistance to Metric.
func Hamming(a, b *Fingerprint) (float64, error) {
	return float64(HammingDistance(a, b)), nil
}

// Weighted adapts WeightedDistance to Metric.
func Weighted(a, b *Fingerprint) (float64, error) {
	return WeightedDistance(a, b)
}

// ParseMetric maps "hamming" and "weighted" to their metrics.
func ParseMetric(name string) (Metric, bool) {
	switch name {
	case "hamming":
		return Hamming, true
	case "weighted":
		return Weighted, true
	}
	return nil, false
}
