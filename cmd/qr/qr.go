// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qr encodes a string as a QR or Micro QR code and writes it
// as a PNG image or, with -a, as ASCII art. Without -a or -o, it
// writes ASCII art when standard output is a terminal.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/qrgo/qr"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	level   string
	version string
	mask    int
	micro   bool
	latin1  bool
	eci     bool
	noBoost bool
	ascii   bool
	scale   int
	fn      string
}{
	level: "l",
	mask:  -1,
	scale: 4,
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprintln(w, "Usage:", cl.Program(), cl.UsageLine(), "[string ...]")
	fmt.Fprintln(w, "If no string is given, data is read from standard input.")
	cl.PrintOptions(w)
}

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func versionInfo() {
	fmt.Println("qr 1.0.0")
	os.Exit(0)
}

// opt is a niladic getopt.Value: setting the flag just calls it.
type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(versionInfo), 'V', "print version").SetFlag()
	getopt.Flag(&g.level, 'l', "error correction level: l, m, q or h", "level")
	getopt.Flag(&g.version, 'v', "QR version: 1-40, or M1-M4 for Micro QR", "ver")
	getopt.Flag(&g.mask, 'k', "force mask pattern; default best by penalty", "mask")
	getopt.Flag(&g.micro, 'M', "require a Micro QR symbol")
	getopt.Flag(&g.latin1, '1', "convert byte-mode segments to Latin-1")
	getopt.Flag(&g.eci, 'e', "emit an ECI header before byte-mode segments")
	getopt.Flag(&g.noBoost, 'n', "don't boost the error correction level")
	getopt.Flag(&g.ascii, 'a', "write ASCII art instead of PNG")
	getopt.Flag(&g.scale, 's', "image pixels per module", "scale")
	getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`, "file")
	getopt.Parse()
}

func parseLevel(s string) (qr.Level, bool) {
	i := strings.IndexByte("lmqh", strings.ToLower(s)[0])
	if i < 0 || len(s) != 1 {
		return 0, false
	}
	return qr.Level(i), true
}

func parseVersion(s string) (qr.Version, bool) {
	switch strings.ToUpper(s) {
	case "M1":
		return qr.M1, true
	case "M2":
		return qr.M2, true
	case "M3":
		return qr.M3, true
	case "M4":
		return qr.M4, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 40 {
		return 0, false
	}
	return qr.Version(n), true
}

func options() qr.Options {
	var opts qr.Options
	lev, ok := parseLevel(g.level)
	if !ok {
		log.Fatalf("%q: bad error correction level", g.level)
	}
	opts.Level = lev
	if g.version != "" {
		v, ok := parseVersion(g.version)
		if !ok {
			log.Fatalf("%q: bad version", g.version)
		}
		opts.Version = v
	}
	if g.micro {
		opts.ForceMicro, opts.Micro = true, true
	}
	if g.mask >= 0 {
		opts.ForceMask, opts.Mask = true, g.mask
	}
	if g.latin1 {
		opts.Encoding = "latin1"
	}
	opts.ECI = g.eci
	opts.NoBoost = g.noBoost
	return opts
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var text string
	if args := getopt.Args(); len(args) != 0 {
		text = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		text, _ = strings.CutSuffix(b.String(), "\n")
	}

	c, err := qr.Encode(text, options())
	if err != nil {
		log.Fatalln(err)
	}

	w := os.Stdout
	if g.fn != "" && g.fn != "-" {
		if w, err = os.Create(g.fn); err != nil {
			log.Fatalln(err)
		}
		defer w.Close()
	}

	ascii := g.ascii
	if g.fn == "" && !ascii {
		ascii = isatty.IsTerminal(uintptr(syscall.Stdout))
	}
	if ascii {
		err = renderASCII(c, w)
	} else {
		err = png.Encode(w, scaledImage{c.Image(), max(g.scale, 1)})
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func renderASCII(c *qr.QRCode, w io.Writer) error {
	const margin = 4
	n := c.Size()
	var b strings.Builder
	for y := -margin; y < n+margin; y++ {
		for x := -margin; x < n+margin; x++ {
			if c.Black(x, y) {
				b.WriteString("##")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// scaledImage upscales img by an integer factor using nearest-neighbor
// sampling, since a module of a freshly built symbol is one pixel.
type scaledImage struct {
	img   image.Image
	scale int
}

func (s scaledImage) ColorModel() color.Model { return s.img.ColorModel() }

func (s scaledImage) Bounds() image.Rectangle {
	b := s.img.Bounds()
	return image.Rect(0, 0, b.Dx()*s.scale, b.Dy()*s.scale)
}

func (s scaledImage) At(x, y int) color.Color {
	return s.img.At(x/s.scale, y/s.scale)
}
