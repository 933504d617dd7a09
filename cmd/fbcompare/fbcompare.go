// Command fbcompare prints the distance between two fingerprints. Each
// argument is either an image file or a 64-character hex fingerprint.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/forbild/forbild"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// load treats arg as a hex fingerprint when it parses as one and as an
// image path otherwise.
func load(arg string, opts forbild.Options) (*forbild.Fingerprint, error) {
	if len(arg) == forbild.HexLen {
		if fp, err := forbild.FromHex(arg); err == nil {
			return fp, nil
		}
	}
	return forbild.FromPath(arg, opts)
}

func main() {
	metricName := pflag.StringP("metric", "m", "hamming", "Distance metric: hamming or weighted")
	autoOrient := pflag.Bool("auto-orient", false, "Apply EXIF orientation before hashing")
	showHashes := pflag.BoolP("show", "s", false, "Print both fingerprints before the distance")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] A B\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 2 {
		pflag.Usage()
		os.Exit(2)
	}
	metric, ok := forbild.ParseMetric(*metricName)
	if !ok {
		logrus.Fatalf("Unknown metric %q", *metricName)
	}

	opts := forbild.DefaultOptions()
	opts.AutoOrient = *autoOrient

	a, err := load(pflag.Arg(0), opts)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load first fingerprint")
	}
	b, err := load(pflag.Arg(1), opts)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load second fingerprint")
	}

	if *showHashes {
		fmt.Println(a.Hex())
		fmt.Println(b.Hex())
	}

	d, err := metric(a, b)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to compare fingerprints")
	}
	fmt.Println(strconv.FormatFloat(d, 'f', -1, 64))
}
