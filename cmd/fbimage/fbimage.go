// Command fbimage writes a preview PNG for each image showing the
// canonical grid, the binarized grid and the hex fingerprint.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forbild/forbild"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	outDir := pflag.StringP("output", "o", ".", "Directory for the preview images")
	scale := pflag.IntP("scale", "s", 16, "Pixel size of one grid cell in the preview")
	resampling := pflag.StringP("resample", "r", forbild.ResampleGaussian.String(),
		"Downsampling filter: gaussian, blur-box or blur-lanczos")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] IMAGE...\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}
	r, ok := forbild.ParseResampling(*resampling)
	if !ok {
		logrus.Fatalf("Unknown resampling filter %q", *resampling)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("Failed to create output directory")
	}

	status := 0
	for _, path := range pflag.Args() {
		log := logrus.WithField("path", path)

		fp, err := forbild.FromPath(path, forbild.Options{Resampling: r})
		if err != nil {
			log.WithError(err).Warn("Skipping image")
			status = 1
			continue
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dst := filepath.Join(*outDir, base+".forbild.png")
		if err := forbild.SavePreview(fp, *scale, dst); err != nil {
			log.WithError(err).Warn("Failed to write preview")
			status = 1
			continue
		}
		fmt.Printf("%s;%s;%s\n", path, fp.Hex(), dst)
	}
	os.Exit(status)
}
