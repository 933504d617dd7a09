package forbild

import (
	"errors"
	"fmt"
)

// ErrNoSnapshot is returned by WeightedDistance when the reference
// fingerprint was decoded from text and carries no grayscale snapshot.
var ErrNoSnapshot = errors.New("fingerprint has no grayscale snapshot")

// DecodeError reports an image that could not be opened or decoded.
// Callers hashing many files can skip the offending file and continue.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to decode image: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidHexCharacterError reports a character outside 0-9A-F. Pos is the
// character index of Char in the input.
type InvalidHexCharacterError struct {
	Char rune
	Pos  int
}

func (e *InvalidHexCharacterError) Error() string {
	return fmt.Sprintf("invalid hex character %q at position %d", e.Char, e.Pos)
}

// InvalidBitCharacterError reports a character other than '0' or '1' in a
// bit string.
type InvalidBitCharacterError struct {
	Char rune
	Pos  int
}

func (e *InvalidBitCharacterError) Error() string {
	return fmt.Sprintf("invalid bit character %q at position %d", e.Char, e.Pos)
}

// LengthError reports input of the wrong size.
type LengthError struct {
	What string
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s has length %d, expected %d", e.What, e.Got, e.Want)
}

// EncodingInvariantError means a bit chunk held a value other than 0 or 1
// while being encoded. Fingerprints cannot produce it; seeing one points to
// a bug in whatever built the bit slice.
type EncodingInvariantError struct {
	Pos   int
	Chunk [4]uint8
}

func (e *EncodingInvariantError) Error() string {
	return fmt.Sprintf("bit chunk %v at position %d is not binary", e.Chunk, e.Pos)
}
