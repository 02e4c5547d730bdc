// Package seeded provides a deterministic pseudo-random source keyed by
// (participant id, event number).
//
// Classification backfill may legitimately run multiple times for the same
// persisted inputs, so every random draw in the pipeline must reproduce the
// same value on every run. The generator hashes the participant/event pair
// and mixes the hash through a trigonometric fold; it is not suitable for
// anything security related.
package seeded

import "math"

// Value returns a deterministic value in [0, 1) for the participant/event pair.
func Value(participantID string, eventNumber int) float64 {
	h := hash(participantID, eventNumber)
	x := math.Sin(math.Abs(float64(h))) * 10000
	return x - math.Floor(x)
}

// Offset returns a deterministic integer in [-span/2, span/2) for the pair.
// Used for bounded placement jitter.
func Offset(participantID string, eventNumber, span int) int {
	if span <= 0 {
		return 0
	}
	return int(math.Floor(Value(participantID, eventNumber)*float64(span))) - span/2
}

// hash folds the pair into a signed 32-bit value. The exact mixing is an
// implementation detail; only stability across runs matters.
func hash(participantID string, eventNumber int) int32 {
	var h int32
	for _, c := range participantID {
		h = h*31 + int32(c)
	}
	h = h*31 + '-'
	n := int32(eventNumber)
	for _, c := range itoa(n) {
		h = h*31 + int32(c)
	}
	return h
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
