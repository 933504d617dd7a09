// Command fbcompareall hashes every image below a directory and prints
// the distance of each unordered pair as "a;b;distance".
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/forbild/forbild"
	"github.com/forbild/forbild/scan"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	metricName := pflag.StringP("metric", "m", "hamming", "Distance metric: hamming or weighted")
	maxDistance := pflag.Float64("max", -1, "Only print pairs at or below this distance (negative = all)")
	workers := pflag.IntP("workers", "j", 0, "Parallel decoders (0 = one per CPU)")
	quiet := pflag.BoolP("quiet", "q", false, "Hide the progress bar")
	verbose := pflag.BoolP("verbose", "v", false, "Log every hashed file")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] DIR\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	metric, ok := forbild.ParseMetric(*metricName)
	if !ok {
		logger.Fatalf("Unknown metric %q", *metricName)
	}

	paths, err := scan.CollectImagePaths(pflag.Arg(0), nil)
	if err != nil {
		logger.WithError(err).Fatal("Failed to collect images")
	}
	logger.Infof("Found %d images", len(paths))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := scan.Options{Hash: forbild.DefaultOptions(), Workers: *workers, Logger: logger}
	if !*quiet {
		bar := progressbar.Default(int64(len(paths)), "Hashing images")
		opts.Progress = func(done, total int) { bar.Set(done) }
	}
	results, err := scan.HashPaths(ctx, paths, opts)
	if err != nil {
		logger.WithError(err).Fatal("Hashing interrupted")
	}

	entries, failed := scan.Entries(results)
	if len(failed) > 0 {
		logger.Warnf("Skipped %d unreadable images", len(failed))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	err = forbild.EachPair(entries, metric, func(p forbild.Pair) error {
		if *maxDistance >= 0 && p.Distance > *maxDistance {
			return nil
		}
		_, err := fmt.Fprintf(out, "%s;%s;%s\n", p.A, p.B, strconv.FormatFloat(p.Distance, 'f', -1, 64))
		return err
	})
	if err != nil {
		out.Flush()
		logger.WithError(err).Fatal("Comparison failed")
	}
}
