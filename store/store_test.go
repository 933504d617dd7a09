package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/forbild/forbild"
	"github.com/forbild/forbild/imageutil"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func gridFingerprint(t *testing.T, g *imageutil.GrayImage) *forbild.Fingerprint {
	t.Helper()
	fp, err := forbild.FromGrid(g)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return fp
}

func TestPutGet(t *testing.T) {
	s := openTemp(t)
	fp := gridFingerprint(t, imageutil.CreateDiagonalGradientGray(forbild.GridSize))
	mod := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

	if err := s.Put("a.png", fp, mod); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	rec, err := s.Get("a.png")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if rec.Fingerprint.Hex() != fp.Hex() {
		t.Errorf("Expected hex %s, got %s", fp.Hex(), rec.Fingerprint.Hex())
	}
	if !rec.Fingerprint.HasSnapshot() || rec.Fingerprint.Medians() != fp.Medians() {
		t.Error("Expected the snapshot to survive storage")
	}
	if !rec.ModifiedAt.Equal(mod) {
		t.Errorf("Expected modified %v, got %v", mod, rec.ModifiedAt)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Expected a creation time")
	}

	if _, err := s.Get("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPutBitsOnly(t *testing.T) {
	s := openTemp(t)
	hexFP, err := forbild.FromHex("886310C37DC7FF87BF0F0A0E361EE03CE4FF83FE0FFEFFDCFF988E3010200000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.Put("hex", hexFP, time.Now()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	rec, err := s.Get("hex")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Fingerprint.HasSnapshot() || !rec.Fingerprint.Equal(hexFP) {
		t.Error("Expected a bits-only fingerprint back")
	}
}

func TestNeedsUpdate(t *testing.T) {
	s := openTemp(t)
	fp := gridFingerprint(t, imageutil.CreateIndexGray(forbild.GridSize))
	mod := time.Date(2023, 1, 2, 3, 4, 5, 0, time.Local)

	if ok, err := s.NeedsUpdate("x.png", mod); err != nil || !ok {
		t.Errorf("Expected a missing path to need an update, got %v (%v)", ok, err)
	}
	if err := s.Put("x.png", fp, mod); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if ok, err := s.NeedsUpdate("x.png", mod); err != nil || ok {
		t.Errorf("Expected an unchanged file to be current, got %v (%v)", ok, err)
	}
	if ok, _ := s.NeedsUpdate("x.png", mod.Add(time.Second)); !ok {
		t.Error("Expected a newer file to need an update")
	}
}

func TestAllCountDelete(t *testing.T) {
	s := openTemp(t)
	fp := gridFingerprint(t, imageutil.CreateIndexGray(forbild.GridSize))
	for _, p := range []string{"c.png", "a.png", "b.png"} {
		if err := s.Put(p, fp, time.Now()); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	// Replacing keeps one row per path.
	if err := s.Put("a.png", fp, time.Now()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	n, err := s.Count()
	if err != nil || n != 3 {
		t.Errorf("Expected 3 records, got %d (%v)", n, err)
	}
	all, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 3 || all[0].Path != "a.png" || all[2].Path != "c.png" {
		t.Errorf("Expected records ordered by path, got %v", all)
	}

	if err := s.Delete("b.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n, _ := s.Count(); n != 2 {
		t.Errorf("Expected 2 records after delete, got %d", n)
	}
}

func TestSearch(t *testing.T) {
	s := openTemp(t)
	query := gridFingerprint(t, imageutil.CreateDiagonalGradientGray(forbild.GridSize))

	near := query.Bits()
	near[0] ^= 1
	nearFP, err := forbild.FromBitString(forbild.BitsToString(near[:]))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	far := gridFingerprint(t, imageutil.CreateIndexGray(forbild.GridSize))

	for path, fp := range map[string]*forbild.Fingerprint{"same": query, "near": nearFP, "far": far} {
		if err := s.Put(path, fp, time.Now()); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	matches, err := s.Search(query, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Path != "same" || matches[0].Hamming != 0 || matches[0].Weighted != 0 {
		t.Errorf("Expected exact match first, got %+v", matches[0])
	}
	if matches[1].Path != "near" || matches[1].Hamming != 1 || matches[1].Weighted <= 0 {
		t.Errorf("Expected near match second, got %+v", matches[1])
	}
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	defer s.Close()

	fp := gridFingerprint(t, imageutil.CreateIndexGray(forbild.GridSize))
	if err := s.Put("m", fp, time.Now()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if n, _ := s.Count(); n != 1 {
		t.Errorf("Expected 1 record, got %d", n)
	}
}
