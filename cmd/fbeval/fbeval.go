// Command fbeval hashes a directory with both forbild and goimagehash's
// pHash, reports the time spent in each, and prints every pair with both
// distances so the two orderings can be compared.
package main

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/forbild/forbild"
	"github.com/forbild/forbild/imageutil"
	"github.com/forbild/forbild/scan"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type sample struct {
	path  string
	fp    *forbild.Fingerprint
	phash *goimagehash.ImageHash
}

func main() {
	resampling := pflag.StringP("resample", "r", forbild.ResampleGaussian.String(),
		"Downsampling filter: gaussian, blur-box or blur-lanczos")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] DIR\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	r, ok := forbild.ParseResampling(*resampling)
	if !ok {
		logrus.Fatalf("Unknown resampling filter %q", *resampling)
	}

	paths, err := scan.CollectImagePaths(pflag.Arg(0), nil)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to collect images")
	}

	var (
		samples            []sample
		ourTime, phashTime time.Duration
	)
	for _, path := range paths {
		log := logrus.WithField("path", path)
		img, err := imageutil.LoadImage(path, false)
		if err != nil {
			log.WithError(err).Warn("Skipping image")
			continue
		}

		s, d1, d2, err := hashBoth(path, img, forbild.Options{Resampling: r})
		if err != nil {
			log.WithError(err).Warn("Skipping image")
			continue
		}
		ourTime += d1
		phashTime += d2
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		logrus.Fatal("No images could be hashed")
	}
	logrus.WithFields(logrus.Fields{
		"images":  len(samples),
		"forbild": (ourTime / time.Duration(len(samples))).String(),
		"phash":   (phashTime / time.Duration(len(samples))).String(),
	}).Info("Mean hashing time per image")

	fmt.Println("a;b;hamming;weighted;phash")
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			a, b := samples[i], samples[j]
			w, err := forbild.WeightedDistance(a.fp, b.fp)
			if err != nil {
				logrus.WithError(err).Fatal("Weighted distance failed")
			}
			pd, err := a.phash.Distance(b.phash)
			if err != nil {
				logrus.WithError(err).Fatal("pHash distance failed")
			}
			fmt.Printf("%s;%s;%d;%.2f;%d\n", a.path, b.path, forbild.HammingDistance(a.fp, b.fp), w, pd)
		}
	}
}

// hashBoth returns both fingerprints of img and the time each took.
func hashBoth(path string, img image.Image, opts forbild.Options) (sample, time.Duration, time.Duration, error) {
	start := time.Now()
	fp, err := forbild.FromImage(img, opts)
	if err != nil {
		return sample{}, 0, 0, err
	}
	ours := time.Since(start)

	start = time.Now()
	ph, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return sample{}, 0, 0, fmt.Errorf("failed to compute phash: %w", err)
	}
	return sample{path: path, fp: fp, phash: ph}, ours, time.Since(start), nil
}
