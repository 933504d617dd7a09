package forbild

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/forbild/forbild/imageutil"
)

// Fingerprint is the perceptual hash of one image. It is immutable once
// built; accessors hand out copies.
//
// A Fingerprint built from an image (or a canonical grid) also keeps the
// grid itself and the four quadrant medians, which WeightedDistance needs.
// One decoded from text (FromHex, FromBitString) only has the bits.
type Fingerprint struct {
	gray     [HashLen]uint8
	bits     [HashLen]uint8
	medians  [2][2]uint8
	snapshot bool
}

// FromGrid fingerprints an already normalized GridSize x GridSize grid.
// The grid is copied, not retained.
func FromGrid(g *imageutil.GrayImage) (*Fingerprint, error) {
	bits, medians, err := Binarize(g)
	if err != nil {
		return nil, err
	}

	fp := &Fingerprint{bits: bits, medians: medians, snapshot: true}
	copy(fp.gray[:], g.Values())
	return fp, nil
}

// FromSnapshot rebuilds a complete fingerprint from a stored canonical
// grid, as returned by GrayImage.
func FromSnapshot(gray [HashLen]uint8) *Fingerprint {
	fp := &Fingerprint{gray: gray, snapshot: true}
	fp.bits, fp.medians = binarizeGrid(snapshotGrid(gray))
	return fp
}

// snapshotGrid lays out a row-major snapshot as a GridSize x GridSize image.
func snapshotGrid(gray [HashLen]uint8) *imageutil.GrayImage {
	g := imageutil.NewGrayImage(GridSize, GridSize)
	copy(g.Pix, gray[:])
	return g
}

// FromImage normalizes and fingerprints a decoded image.
func FromImage(img image.Image, opts Options) (*Fingerprint, error) {
	if img.Bounds().Empty() {
		return nil, &DecodeError{Err: imageutil.ErrEmptyImage}
	}
	return FromGrid(Normalize(img, opts))
}

// FromReader decodes an image from r and fingerprints it.
func FromReader(r io.Reader, opts Options) (*Fingerprint, error) {
	img, err := imageutil.DecodeImage(r, opts.AutoOrient)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return FromImage(img, opts)
}

// FromBytes fingerprints an encoded image held in memory.
func FromBytes(data []byte, opts Options) (*Fingerprint, error) {
	return FromReader(bytes.NewReader(data), opts)
}

// FromPath decodes the image file at path and fingerprints it. Open and
// decode failures are returned as *DecodeError.
func FromPath(path string, opts Options) (*Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := imageutil.DecodeImage(f, opts.AutoOrient)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return FromImage(img, opts)
}

// FromHex decodes the HexLen-character form produced by Hex.
//
// The reconstruction is partial: only the bits are recovered. The result
// works with HammingDistance but has no grayscale snapshot, so
// WeightedDistance rejects it as the reference fingerprint.
func FromHex(s string) (*Fingerprint, error) {
	if len(s) != HexLen {
		return nil, &LengthError{What: "hex fingerprint", Got: len(s), Want: HexLen}
	}
	bits, err := HexToBits(s)
	if err != nil {
		return nil, err
	}
	return fromBits(bits), nil
}

// FromBitString decodes the HashLen-character form produced by
// BitString. Like FromHex it recovers the bits only.
func FromBitString(s string) (*Fingerprint, error) {
	if len(s) != HashLen {
		return nil, &LengthError{What: "bit string fingerprint", Got: len(s), Want: HashLen}
	}
	bits, err := StringToBits(s)
	if err != nil {
		return nil, err
	}
	return fromBits(bits), nil
}

func fromBits(bits []uint8) *Fingerprint {
	fp := &Fingerprint{}
	copy(fp.bits[:], bits)
	return fp
}

// Bits returns the fingerprint bits, row-major.
func (fp *Fingerprint) Bits() [HashLen]uint8 {
	return fp.bits
}

// GrayImage returns the canonical grid the bits were computed from. It is
// all zeros when HasSnapshot is false.
func (fp *Fingerprint) GrayImage() [HashLen]uint8 {
	return fp.gray
}

// Grid returns the snapshot as an image, or nil without a snapshot.
func (fp *Fingerprint) Grid() *imageutil.GrayImage {
	if !fp.snapshot {
		return nil
	}
	return snapshotGrid(fp.gray)
}

// Medians returns the quadrant thresholds indexed [col][row].
func (fp *Fingerprint) Medians() [2][2]uint8 {
	return fp.medians
}

// Median returns the threshold of one quadrant.
func (fp *Fingerprint) Median(q Quadrant) uint8 {
	col, row := q.Halves()
	return fp.medians[col][row]
}

// HasSnapshot reports whether the grayscale grid and medians are known.
func (fp *Fingerprint) HasSnapshot() bool {
	return fp.snapshot
}

// BitString renders the bits as HashLen '0'/'1' characters, row-major.
func (fp *Fingerprint) BitString() string {
	return BitsToString(fp.bits[:])
}

// Hex renders the fingerprint as HexLen uppercase hex characters.
// It panics if the bit invariant has been broken, which cannot happen for
// fingerprints built by this package.
func (fp *Fingerprint) Hex() string {
	s, err := BitsToHex(fp.bits[:])
	if err != nil {
		panic(fmt.Sprintf("forbild: corrupt fingerprint: %v", err))
	}
	return s
}

func (fp *Fingerprint) String() string {
	return fp.Hex()
}

// Equal reports whether both fingerprints have the same bits.
func (fp *Fingerprint) Equal(other *Fingerprint) bool {
	return fp.bits == other.bits
}

// MarshalText encodes the fingerprint in its hex form.
func (fp *Fingerprint) MarshalText() ([]byte, error) {
	s, err := BitsToHex(fp.bits[:])
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText decodes the hex form. Like FromHex, only the bits are
// restored.
func (fp *Fingerprint) UnmarshalText(text []byte) error {
	decoded, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*fp = *decoded
	return nil
}
