package forbild

import "strings"

// HexDigits maps a nibble value to its uppercase hex character.
const HexDigits = "0123456789ABCDEF"

// NibbleToHex encodes four bits, most significant first. It reports false
// if any entry is not 0 or 1.
func NibbleToHex(nibble [4]uint8) (byte, bool) {
	v := 0
	for _, b := range nibble {
		if b > 1 {
			return 0, false
		}
		v = v<<1 | int(b)
	}
	return HexDigits[v], true
}

// HexToNibble expands an uppercase hex character into four bits, most
// significant first. It reports false for any other character.
func HexToNibble(c byte) ([4]uint8, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'A' && c <= 'F':
		v = int(c-'A') + 10
	default:
		return [4]uint8{}, false
	}
	return [4]uint8{uint8(v >> 3 & 1), uint8(v >> 2 & 1), uint8(v >> 1 & 1), uint8(v & 1)}, true
}

// BitsToHex encodes consecutive groups of four bits as hex characters.
// A chunk containing anything but 0 or 1 yields an EncodingInvariantError.
func BitsToHex(bits []uint8) (string, error) {
	if len(bits)%4 != 0 {
		return "", &LengthError{What: "bit sequence", Got: len(bits), Want: len(bits) + 4 - len(bits)%4}
	}

	var sb strings.Builder
	sb.Grow(len(bits) / 4)
	for i := 0; i < len(bits); i += 4 {
		chunk := [4]uint8{bits[i], bits[i+1], bits[i+2], bits[i+3]}
		c, ok := NibbleToHex(chunk)
		if !ok {
			return "", &EncodingInvariantError{Pos: i, Chunk: chunk}
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

// HexToBits expands every character of s into four bits. The first
// character outside 0-9A-F yields an InvalidHexCharacterError whose Pos
// counts characters, not bytes.
func HexToBits(s string) ([]uint8, error) {
	bits := make([]uint8, 0, len(s)*4)
	pos := 0
	for _, r := range s {
		var nibble [4]uint8
		ok := false
		if r <= 0x7f {
			nibble, ok = HexToNibble(byte(r))
		}
		if !ok {
			return nil, &InvalidHexCharacterError{Char: r, Pos: pos}
		}
		bits = append(bits, nibble[:]...)
		pos++
	}
	return bits, nil
}

// BitsToString renders bits as '0' and '1' characters. Values other than
// 0 and 1 are written as '?'; unlike BitsToHex it never reports an
// EncodingInvariantError, so use BitsToHex when the bits must be validated.
func BitsToString(bits []uint8) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		switch b {
		case 0:
			buf[i] = '0'
		case 1:
			buf[i] = '1'
		default:
			buf[i] = '?'
		}
	}
	return string(buf)
}

// StringToBits parses a string of '0' and '1' characters.
func StringToBits(s string) ([]uint8, error) {
	bits := make([]uint8, 0, len(s))
	pos := 0
	for _, r := range s {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		default:
			return nil, &InvalidBitCharacterError{Char: r, Pos: pos}
		}
		pos++
	}
	return bits, nil
}
