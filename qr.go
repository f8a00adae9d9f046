// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR and Micro QR codes as specified by ISO/IEC 18004.

Encode turns a string into a QRCode: a fixed matrix of dark and light
modules, plus the version, error-correction level and mask pattern
chosen to build it. The low-level mechanics — segment encoding,
Reed-Solomon error correction, matrix construction, masking, format
and version information — live in the coding subpackage; this package
picks sizes and builds segments on top of it.
*/
package qr

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/qrgo/qr/coding"
)

// Level is a QR error correction level, from least to most tolerant
// of errors: L, M, Q, H.
type Level = coding.Level

// Error correction levels.
const (
	L = coding.L
	M = coding.M
	Q = coding.Q
	H = coding.H
)

// Version identifies a QR or Micro QR symbol size: 1 through 40 for
// regular symbols, M1 through M4 for Micro.
type Version = coding.Version

// Micro QR versions.
const (
	M1 = coding.M1
	M2 = coding.M2
	M3 = coding.M3
	M4 = coding.M4
)

// Mode identifies a segment encoding.
type Mode = coding.Mode

// Standard segment modes.
const (
	Numeric      = coding.Numeric
	Alphanumeric = coding.Alphanumeric
	Byte         = coding.Byte
	Kanji        = coding.Kanji
	Latin1       = coding.Latin1
	ECI          = coding.ECI
)

// Options controls how Encode builds a symbol. The zero Options
// selects level L, the smallest regular version that fits, automatic
// per-segment mode selection, the lowest-penalty mask, UTF-8 byte-mode
// text, no ECI header, a regular (non-Micro) symbol, and error-level
// boosting enabled.
type Options struct {
	Level Level

	// Version forces a specific version; zero selects the smallest
	// version that fits automatically.
	Version Version

	// Mode forces the entire content into a single segment of this
	// mode instead of auto-segmenting it. ForceMode must be set for
	// Mode to take effect.
	Mode      Mode
	ForceMode bool

	// Mask forces a specific mask pattern, 0-7 for a regular symbol or
	// 0-3 for Micro. ForceMask must be set for Mask to take effect.
	Mask      int
	ForceMask bool

	// Encoding names the byte-mode text encoding: "" or "utf-8" (the
	// default) keeps byte segments as UTF-8; "latin1" or "iso-8859-1"
	// re-encodes them as ISO-8859-1 instead. It does not change how
	// segmentation weighs the choice between modes, only which byte
	// encoding a chosen Byte segment ultimately uses.
	Encoding string

	// ECI emits an ECI header declaring UTF-8 before the segments.
	// Incompatible with a Micro symbol.
	ECI bool

	// Micro forces a micro (true) or regular (false) symbol. ForceMicro
	// must be set for Micro to take effect.
	Micro      bool
	ForceMicro bool

	// NoBoost disables the default error-level boost: raising the
	// chosen level, without changing the version, to the highest level
	// that still fits.
	NoBoost bool
}

// A QRCode is the result of a successful Encode: a fixed module
// matrix together with the parameters chosen to build it. Consumers
// get read-only access to the matrix through Black, Size and Image.
type QRCode struct {
	matrix  *coding.Matrix
	version Version
	level   Level
	mask    int
}

// Version returns the version of c.
func (c *QRCode) Version() Version { return c.version }

// Level returns the error correction level c was built at, after any
// boosting.
func (c *QRCode) Level() Level { return c.level }

// Mask returns the mask pattern applied to c.
func (c *QRCode) Mask() int { return c.mask }

// IsMicro reports whether c is a Micro QR symbol.
func (c *QRCode) IsMicro() bool { return c.version.IsMicro() }

// Size returns the number of modules on a side of c.
func (c *QRCode) Size() int { return c.matrix.Size() }

// Black reports whether the module at column x, row y is dark.
func (c *QRCode) Black(x, y int) bool {
	n := c.matrix.Size()
	if x < 0 || y < 0 || x >= n || y >= n {
		return false
	}
	return c.matrix.Dark(y, x)
}

// Image returns an image.Image displaying c, with a four-module quiet
// zone of white space on every side, as required for a symbol to be
// scannable.
func (c *QRCode) Image() image.Image { return qrImage{c} }

type qrImage struct{ *QRCode }

const quietZone = 4

func (c qrImage) Bounds() image.Rectangle {
	d := c.Size() + 2*quietZone
	return image.Rect(0, 0, d, d)
}

func (c qrImage) At(x, y int) color.Color {
	if c.Black(x-quietZone, y-quietZone) {
		return color.Gray{Y: 0x00}
	}
	return color.Gray{Y: 0xff}
}

func (c qrImage) ColorModel() color.Model { return color.GrayModel }

func isLatin1Encoding(encoding string) bool {
	switch strings.ToLower(encoding) {
	case "latin1", "latin-1", "iso-8859-1":
		return true
	}
	return false
}

// applyEncoding retargets every Byte segment in segs to Latin1 when
// encoding asks for it. It doesn't re-run segmentation, so it isn't
// length-optimal when Latin1 would pack tighter than UTF-8 did; that
// tradeoff is left unaddressed since Latin1 is a caller-requested
// override, not something auto-segmentation chooses on its own.
func applyEncoding(segs []coding.Segment, encoding string) []coding.Segment {
	if !isLatin1Encoding(encoding) {
		return segs
	}
	out := make([]coding.Segment, len(segs))
	for i, s := range segs {
		if s.Mode == Byte {
			s.Mode = Latin1
		}
		out[i] = s
	}
	return out
}

// dataOverflowWithProposal builds a DataOverflow error for a version
// that doesn't fit segs, naming the smallest version across all
// classes that would, per the error-handling design's retry guidance.
func dataOverflowWithProposal(segs []coding.Segment, level Level, forced Version) error {
	proposal, err := coding.PlanVersion(segs, level, true, true)
	if err != nil {
		return &coding.Error{Code: coding.DataOverflow,
			Msg: fmt.Sprintf("data too long for version %s; no version fits", forced)}
	}
	return &coding.Error{Code: coding.DataOverflow,
		Msg: fmt.Sprintf("data too long for version %s; smallest fit is %s", forced, proposal)}
}

// Encode builds a QR or Micro QR symbol encoding content per opts.
func Encode(content string, opts Options) (*QRCode, error) {
	if content == "" {
		return nil, &coding.Error{Code: coding.DataOverflow, Msg: "empty input"}
	}
	level := opts.Level
	if level < L || level > H {
		return nil, &coding.Error{Code: coding.InvalidErrorLevel,
			Msg: fmt.Sprintf("invalid error level %d", level)}
	}
	if opts.ForceMask && (opts.Mask < 0 || opts.Mask > 7) {
		return nil, &coding.Error{Code: coding.InvalidMask,
			Msg: fmt.Sprintf("mask %d out of range", opts.Mask)}
	}

	// Micro is opt-in only: per §4.3/§8, a symbol defaults to regular
	// unless the caller explicitly asks for Micro via ForceMicro or a
	// Micro Version below.
	micro, regular := false, true
	if opts.ForceMicro {
		micro, regular = opts.Micro, !opts.Micro
	}
	if opts.Version != 0 {
		if !opts.Version.Valid() {
			return nil, &coding.Error{Code: coding.InvalidVersion,
				Msg: fmt.Sprintf("invalid version %s", opts.Version)}
		}
		if opts.ForceMicro && opts.Version.IsMicro() != opts.Micro {
			return nil, &coding.Error{Code: coding.InvalidVersion,
				Msg: fmt.Sprintf("version %s incompatible with requested micro=%v",
					opts.Version, opts.Micro)}
		}
		micro, regular = opts.Version.IsMicro(), !opts.Version.IsMicro()
		if !level.Valid(opts.Version) {
			return nil, &coding.Error{Code: coding.InvalidErrorLevel,
				Msg: fmt.Sprintf("level %s not valid for version %s", level, opts.Version)}
		}
	} else if opts.ForceMicro && opts.Micro && !level.Valid(M4) {
		// No version was forced, so auto-selection would otherwise try
		// every Micro class, find none of them admit this level (M4 is
		// the most permissive Micro class, so if level doesn't fit
		// there it fits no Micro version), and fail with a misleading
		// DataOverflow instead of naming the real problem.
		return nil, &coding.Error{Code: coding.InvalidErrorLevel,
			Msg: fmt.Sprintf("level %s not valid for any micro version", level)}
	}
	if opts.ECI && !regular {
		return nil, &coding.Error{Code: coding.InvalidMode,
			Msg: "ECI header not valid for a Micro symbol"}
	}

	mode := opts.Mode
	if opts.ForceMode && mode == Byte && isLatin1Encoding(opts.Encoding) {
		mode = Latin1
	}

	var segs []coding.Segment
	var version Version
	switch {
	case opts.ForceMode:
		segs = []coding.Segment{{Text: content, Mode: mode}}
		if opts.Version != 0 {
			version = opts.Version
			if !coding.Fits(segs, version, level) {
				return nil, dataOverflowWithProposal(segs, level, version)
			}
		} else {
			v, err := coding.PlanVersion(segs, level, micro, regular)
			if err != nil {
				return nil, err
			}
			version = v
		}
	case opts.Version != 0:
		version = opts.Version
		segs = applyEncoding(coding.AutoSegments(content, version.SizeClass()), opts.Encoding)
		if !coding.Fits(segs, version, level) {
			return nil, dataOverflowWithProposal(segs, level, version)
		}
	default:
		plan, err := coding.PlanText(content, level, micro, regular)
		if err != nil {
			return nil, err
		}
		segs, version, level = applyEncoding(plan.Segments, opts.Encoding), plan.Version, plan.Level
	}

	if opts.ECI {
		segs = append([]coding.Segment{{Text: "\x1a", Mode: coding.ECI}}, segs...)
		switch {
		case opts.Version != 0:
			if !coding.Fits(segs, version, level) {
				return nil, dataOverflowWithProposal(segs, level, version)
			}
		default:
			v, err := coding.PlanVersion(segs, level, micro, regular)
			if err != nil {
				return nil, err
			}
			version = v
		}
	}

	if !opts.NoBoost {
		level = coding.BoostLevel(segs, version, level)
	}

	mask := -1
	if opts.ForceMask {
		mask = opts.Mask
	}
	m, chosenMask, err := coding.Build(segs, version, level, mask)
	if err != nil {
		return nil, err
	}
	return &QRCode{matrix: m, version: version, level: level, mask: chosenMask}, nil
}
