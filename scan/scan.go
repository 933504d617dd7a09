// Package scan finds image files and fingerprints them in parallel.
package scan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/forbild/forbild"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultExtensions lists the file extensions treated as images.
var DefaultExtensions = []string{".jpg", ".jpeg", ".bmp", ".gif", ".png", ".tif", ".tiff", ".webp"}

// Options configures HashPaths.
type Options struct {
	// Hash is passed to forbild.FromPath for every file.
	Hash forbild.Options

	// Workers bounds the number of files decoded at once. Zero means
	// GOMAXPROCS.
	Workers int

	// Logger receives a warning for every file that fails. Nil discards.
	Logger *logrus.Logger

	// Progress, if set, is called after each file with the number of
	// files finished so far. Calls are serialized.
	Progress func(done, total int)
}

// Result is the outcome for one file. Exactly one of Fingerprint and Err
// is set.
type Result struct {
	Path        string
	Fingerprint *forbild.Fingerprint
	Err         error
}

// IsImagePath reports whether path has one of exts, compared without
// regard to case.
func IsImagePath(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// CollectImagePaths walks root and returns the regular files whose
// extension is in exts, sorted. A nil exts means DefaultExtensions. If
// root is itself a file it is returned as long as it matches.
func CollectImagePaths(root string, exts []string) ([]string, error) {
	if exts == nil {
		exts = DefaultExtensions
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if IsImagePath(path, exts) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// HashPaths fingerprints every path using a bounded pool of workers.
// Results come back in the order of paths. A file that cannot be decoded
// gets its error recorded in its Result and is logged; the remaining files
// are still hashed. The returned error is non-nil only when ctx is
// cancelled; every path that was not hashed by then carries ctx's error.
func HashPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	for i, path := range paths {
		results[i].Path = path
	}
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}

			fp, err := forbild.FromPath(path, opts.Hash)
			results[i] = Result{Path: path, Fingerprint: fp, Err: err}
			if err != nil {
				logger.WithField("path", path).WithError(err).Warn("Skipping image")
			} else {
				logger.WithFields(logrus.Fields{"path": path, "hash": fp.Hex()}).Debug("Hashed image")
			}

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(paths))
				mu.Unlock()
			}
			return nil
		})
	}

	waitErr := g.Wait()
	if err := ctx.Err(); err != nil {
		// paths the loop never handed to a worker
		for i := range results {
			if results[i].Fingerprint == nil && results[i].Err == nil {
				results[i].Err = err
			}
		}
		return results, err
	}
	return results, waitErr
}

// Entries converts the successful results to comparison entries keyed by
// path and returns the failures separately. A result without a fingerprint
// always counts as failed.
func Entries(results []Result) (entries []forbild.Entry, failed []Result) {
	for _, r := range results {
		if r.Err != nil || r.Fingerprint == nil {
			failed = append(failed, r)
			continue
		}
		entries = append(entries, forbild.Entry{ID: r.Path, Fingerprint: r.Fingerprint})
	}
	return entries, failed
}
