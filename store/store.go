// Package store keeps fingerprints in a SQLite index so that directories
// can be rescanned incrementally and searched without decoding images.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/forbild/forbild"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get for an unknown path.
var ErrNotFound = errors.New("fingerprint not found")

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS fingerprints (
	path TEXT PRIMARY KEY,
	hex TEXT NOT NULL,
	bits TEXT NOT NULL,
	gray BLOB,
	modified_at TEXT,
	created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_hex ON fingerprints(hex);`

// Record is one indexed image.
type Record struct {
	Path        string
	Fingerprint *forbild.Fingerprint
	ModifiedAt  time.Time
	CreatedAt   time.Time
}

// Match is a search hit.
type Match struct {
	Record
	Hamming int

	// Weighted is the weighted distance from the query, or 0 when the
	// query has no snapshot.
	Weighted float64
}

// Store is a fingerprint index backed by a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index at path. ":memory:" gives a private
// in-memory index.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces the fingerprint for path. The grayscale snapshot
// is stored when the fingerprint has one, so that weighted distances work
// on loaded records.
func (s *Store) Put(path string, fp *forbild.Fingerprint, modTime time.Time) error {
	var gray []byte
	if fp.HasSnapshot() {
		g := fp.GrayImage()
		gray = g[:]
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO fingerprints (path, hex, bits, gray, modified_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		path, fp.Hex(), fp.BitString(), gray,
		modTime.UTC().Format(timeFormat), time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to store fingerprint for %s: %w", path, err)
	}
	return nil
}

// Get loads the record for path.
func (s *Store) Get(path string) (*Record, error) {
	row := s.db.QueryRow(`SELECT path, hex, gray, modified_at, created_at FROM fingerprints WHERE path = ?`, path)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fingerprint for %s: %w", path, err)
	}
	return rec, nil
}

// NeedsUpdate reports whether path is missing from the index or was
// indexed with a different modification time.
func (s *Store) NeedsUpdate(path string, modTime time.Time) (bool, error) {
	var stored string
	err := s.db.QueryRow(`SELECT modified_at FROM fingerprints WHERE path = ?`, path).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return stored != modTime.UTC().Format(timeFormat), nil
}

// Delete removes path from the index. Unknown paths are ignored.
func (s *Store) Delete(path string) error {
	if _, err := s.db.Exec(`DELETE FROM fingerprints WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// Count returns the number of indexed images.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fingerprints`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count fingerprints: %w", err)
	}
	return n, nil
}

// All returns every record ordered by path.
func (s *Store) All() ([]Record, error) {
	rows, err := s.db.Query(`SELECT path, hex, gray, modified_at, created_at FROM fingerprints ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprints: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fingerprints: %w", err)
	}
	return records, nil
}

// Search returns the records within maxHamming of query, ordered by
// Hamming distance and then by weighted distance.
func (s *Store) Search(query *forbild.Fingerprint, maxHamming int) ([]Match, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, rec := range records {
		d := forbild.HammingDistance(query, rec.Fingerprint)
		if d > maxHamming {
			continue
		}
		m := Match{Record: rec, Hamming: d}
		if query.HasSnapshot() {
			m.Weighted, err = forbild.WeightedDistance(query, rec.Fingerprint)
			if err != nil {
				return nil, err
			}
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Hamming != matches[j].Hamming {
			return matches[i].Hamming < matches[j].Hamming
		}
		return matches[i].Weighted < matches[j].Weighted
	})
	return matches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec               Record
		hex               string
		gray              []byte
		modified, created sql.NullString
	)
	if err := row.Scan(&rec.Path, &hex, &gray, &modified, &created); err != nil {
		return nil, err
	}

	if len(gray) == forbild.HashLen {
		var snapshot [forbild.HashLen]uint8
		copy(snapshot[:], gray)
		rec.Fingerprint = forbild.FromSnapshot(snapshot)
	} else {
		fp, err := forbild.FromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("corrupt fingerprint for %s: %w", rec.Path, err)
		}
		rec.Fingerprint = fp
	}

	var err error
	if rec.ModifiedAt, err = parseTime(modified); err != nil {
		return nil, fmt.Errorf("bad modified_at for %s: %w", rec.Path, err)
	}
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("bad created_at for %s: %w", rec.Path, err)
	}
	return &rec, nil
}

func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeFormat, s.String)
}
