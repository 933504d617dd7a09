// Command fbindex maintains a SQLite index of fingerprints.
//
//	fbindex [--db PATH] scan DIR...      hash new or modified images
//	fbindex [--db PATH] search IMAGE|HEX list indexed images close to a query
//	fbindex [--db PATH] stats            print the number of indexed images
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/forbild/forbild"
	"github.com/forbild/forbild/scan"
	"github.com/forbild/forbild/store"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var logger = logrus.New()

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [--db PATH] scan|search|stats [flags] ARGS...\n", os.Args[0])
	pflag.PrintDefaults()
}

func main() {
	dbPath := pflag.String("db", "forbild.db", "Path of the index database")
	verbose := pflag.BoolP("verbose", "v", false, "Debug logging")
	pflag.Usage = usage
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if pflag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open index")
	}
	defer s.Close()

	cmd, args := pflag.Arg(0), pflag.Args()[1:]
	switch cmd {
	case "scan":
		err = runScan(s, args)
	case "search":
		err = runSearch(s, args)
	case "stats":
		err = runStats(s)
	default:
		usage()
		s.Close()
		os.Exit(2)
	}
	if err != nil {
		s.Close()
		logger.WithError(err).Fatalf("%s failed", cmd)
	}
}

func runScan(s *store.Store, args []string) error {
	fs := pflag.NewFlagSet("scan", pflag.ExitOnError)
	workers := fs.IntP("workers", "j", 0, "Parallel decoders (0 = one per CPU)")
	force := fs.BoolP("force", "f", false, "Rehash images even if unchanged")
	quiet := fs.BoolP("quiet", "q", false, "Hide the progress bar")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var pending []string
	for _, dir := range fs.Args() {
		paths, err := scan.CollectImagePaths(dir, nil)
		if err != nil {
			return err
		}
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				logger.WithField("path", p).WithError(err).Warn("Skipping image")
				continue
			}
			stale, err := s.NeedsUpdate(p, info.ModTime())
			if err != nil {
				return err
			}
			if stale || *force {
				pending = append(pending, p)
			}
		}
	}
	logger.Infof("%d images to hash", len(pending))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := scan.Options{Hash: forbild.DefaultOptions(), Workers: *workers, Logger: logger}
	if !*quiet {
		bar := progressbar.Default(int64(len(pending)), "Hashing images")
		opts.Progress = func(done, total int) { bar.Set(done) }
	}
	results, err := scan.HashPaths(ctx, pending, opts)

	// Store whatever finished, even after an interrupt.
	stored := 0
	for _, res := range results {
		if res.Fingerprint == nil {
			continue
		}
		info, statErr := os.Stat(res.Path)
		if statErr != nil {
			logger.WithField("path", res.Path).WithError(statErr).Warn("Image vanished")
			continue
		}
		if putErr := s.Put(res.Path, res.Fingerprint, info.ModTime()); putErr != nil {
			return putErr
		}
		stored++
	}
	logger.Infof("Indexed %d images", stored)
	return err
}

func runSearch(s *store.Store, args []string) error {
	fs := pflag.NewFlagSet("search", pflag.ExitOnError)
	maxHamming := fs.IntP("max", "m", 16, "Maximum Hamming distance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("search needs exactly one image or hex fingerprint")
	}

	query, err := loadQuery(fs.Arg(0))
	if err != nil {
		return err
	}
	matches, err := s.Search(query, *maxHamming)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Printf("%s;%d;%.2f\n", m.Path, m.Hamming, m.Weighted)
	}
	return nil
}

func loadQuery(arg string) (*forbild.Fingerprint, error) {
	if len(arg) == forbild.HexLen {
		if fp, err := forbild.FromHex(arg); err == nil {
			return fp, nil
		}
	}
	return forbild.FromPath(arg, forbild.DefaultOptions())
}

func runStats(s *store.Store) error {
	n, err := s.Count()
	if err != nil {
		return err
	}
	fmt.Printf("%d images indexed\n", n)
	return nil
}
