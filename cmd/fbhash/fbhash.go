// Command fbhash prints the fingerprint of every image given on the
// command line. Directories are searched recursively.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/forbild/forbild"
	"github.com/forbild/forbild/scan"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	bits := pflag.BoolP("bits", "b", false, "Print the 256-character bit string instead of hex")
	resampling := pflag.StringP("resample", "r", forbild.ResampleGaussian.String(),
		"Downsampling filter: gaussian, blur-box or blur-lanczos")
	autoOrient := pflag.Bool("auto-orient", false, "Apply EXIF orientation before hashing")
	workers := pflag.IntP("workers", "j", 0, "Parallel decoders (0 = one per CPU)")
	progress := pflag.BoolP("progress", "p", false, "Show a progress bar on stderr")
	verbose := pflag.BoolP("verbose", "v", false, "Log every hashed file")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] IMAGE|DIR...\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	r, ok := forbild.ParseResampling(*resampling)
	if !ok {
		logger.Fatalf("Unknown resampling filter %q", *resampling)
	}

	var paths []string
	for _, arg := range pflag.Args() {
		found, err := scan.CollectImagePaths(arg, nil)
		if err != nil {
			logger.WithError(err).Fatal("Failed to collect images")
		}
		paths = append(paths, found...)
	}

	opts := scan.Options{
		Hash:    forbild.Options{Resampling: r, AutoOrient: *autoOrient},
		Workers: *workers,
		Logger:  logger,
	}
	if *progress {
		bar := progressbar.Default(int64(len(paths)), "Hashing images")
		opts.Progress = func(done, total int) { bar.Set(done) }
	}

	results, err := scan.HashPaths(context.Background(), paths, opts)
	if err != nil {
		logger.WithError(err).Fatal("Hashing interrupted")
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		if *bits {
			fmt.Printf("%s;%s\n", res.Path, res.Fingerprint.BitString())
		} else {
			fmt.Printf("%s;%s\n", res.Path, res.Fingerprint.Hex())
		}
	}
	if failed > 0 {
		logger.Warnf("%d of %d images could not be hashed", failed, len(results))
		os.Exit(1)
	}
}
