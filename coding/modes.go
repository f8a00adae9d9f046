// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Mode identifies a segment encoding registered with AddMode.
type Mode int16

// Predefined encoding modes.
const (
	Numeric       Mode = iota // numeric mode, ASCII digits
	Alphanumeric              // alphanumeric mode, restricted ASCII text
	Byte                      // byte mode, any data
	Kanji                     // kanji mode, UTF-8 text re-encoded as Shift-JIS
	Latin1                    // byte mode, UTF-8 text re-encoded as ISO-8859-1
	ECI                       // extended channel interpretation header, raw segment
)

// ModeEncoder implements a segment encoding.
//
// A segment is validated either with Valid, or with CutRune and
// Accepts. A ModeEncoder whose Transform is set produces a segment of
// another mode, which is validated and encoded in its place; the
// target mode's own Transform must be nil.
//
// Name, Indicator and CountLength must be set.
type ModeEncoder struct {
	Name      string // name for error reporting
	Indicator byte   // 4-bit mode indicator for QR codes

	// CountLength lists the character count field width in bits for
	// the four Micro QR and three QR version size classes, in the
	// order ClassM1..ClassM4, Class0, Class1, Class2.
	CountLength [7]byte

	// EncodedLength returns the encoded data length in bits of a
	// valid string of the given length in bytes and runes, excluding
	// the header. If nil, the length is 8 bits per byte.
	EncodedLength func(bytes, runes int) int

	// Valid reports whether the string is valid for the mode. If nil,
	// the string is validated rune by rune with CutRune and Accepts.
	Valid func(string) bool

	// CutRune returns the first rune in the string and its width in
	// bytes. If nil, utf8.DecodeRuneInString is used.
	CutRune func(string) (rune, int)

	// Accepts reports whether the mode accepts the rune. If nil, any
	// rune is accepted.
	Accepts func(rune) bool

	// Transform returns a segment of another mode with the string
	// re-encoded, and whether the transform succeeded.
	Transform func(string) (Segment, bool)

	// Count returns the character count of the transformed string. If
	// nil, the length of the string in bytes is used.
	Count func(string) int

	// Encode3, Encode2 and Encode1 return the bit encoding of 3, 2 or
	// 1 source bytes and its length in bits. The encoder calls a
	// non-nil Encode{N} repeatedly while N bytes remain, in descending
	// order of N. If all are nil, each byte is encoded as 8 bits.
	Encode3 func([3]byte) (uint32, int)
	Encode2 func([2]byte) (uint32, int)
	Encode1 func(byte) (uint32, int)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// alpha maps an alphanumeric-mode byte (masked to 6 bits of its ASCII
// value starting at '0') to its value in the range 0-44.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

func nothing(rune) bool { return false }

// IsKanji reports whether r falls in the Unicode blocks the Kanji
// mode draws from: Hiragana, Katakana, and the CJK Unified Ideographs
// and halfwidth/fullwidth forms commonly reachable through JIS X
// 0208. It is only a coarse prefilter, not an exact JIS X 0208
// membership test, so it's used solely to validate an explicitly
// requested Kanji segment (Kanji's Accepts); auto-segmentation never
// calls it, since not every rune it admits actually round-trips
// through Shift-JIS. The ShiftJIS transform Kanji's Transform calls is
// the real authority on encodability.
func IsKanji(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x30ff: // Hiragana, Katakana
		return true
	case r >= 0x4e00 && r <= 0x9fff: // CJK Unified Ideographs
		return true
	case r >= 0xff00 && r <= 0xffef: // halfwidth and fullwidth forms
		return true
	}
	return false
}

var stdModes = []ModeEncoder{
	Numeric: {
		Name:          "numeric",
		Indicator:     1,
		CountLength:   [7]byte{3, 4, 5, 6, 10, 12, 14},
		EncodedLength: func(b, r int) int { return (10*b + 2) / 3 },
		Accepts:       func(r rune) bool { return uint32(r-'0') < 10 },
		Encode1: func(b byte) (uint32, int) {
			return uint32(b - '0'), 4
		},
		Encode2: func(b [2]byte) (uint32, int) {
			return uint32(b[0])*10 + uint32(b[1]) - '0'*11, 7
		},
		Encode3: func(b [3]byte) (uint32, int) {
			return uint32(b[0])*100 + uint32(b[1])*10 +
				uint32(b[2]) - '0'*111, 10
		},
	},
	Alphanumeric: {
		Name:          "alphanumeric",
		Indicator:     2,
		CountLength:   [7]byte{0, 3, 4, 5, 9, 11, 13},
		EncodedLength: func(b, r int) int { return (11*b + 1) / 2 },
		Accepts: func(r rune) bool {
			return uint32(r) >= ' ' && alphamask>>(uint32(r)-' ')&1 != 0
		},
		Encode1: func(b byte) (uint32, int) {
			return uint32(alpha[b&0x3f]), 6
		},
		Encode2: func(b [2]byte) (uint32, int) {
			return uint32(alpha[b[0]&0x3f])*45 +
				uint32(alpha[b[1]&0x3f]), 11
		},
	},
	Byte: {
		Name:        "byte",
		Indicator:   4,
		CountLength: [7]byte{0, 0, 4, 5, 8, 16, 16},
	},
	Kanji: {
		Name:          "kanji",
		Indicator:     8,
		CountLength:   [7]byte{0, 0, 3, 4, 8, 10, 12},
		EncodedLength: func(b, r int) int { return r * 13 },
		Accepts:       IsKanji,
		Transform: func(s string) (Segment, bool) {
			t, err := japanese.ShiftJIS.NewEncoder().String(s)
			if err != nil || len(t)%2 != 0 {
				return Segment{}, false
			}
			return Segment{t, shiftJISBytes}, true
		},
	},
	Latin1: {
		Name:          "latin-1",
		Indicator:     4,
		CountLength:   [7]byte{0, 0, 4, 5, 8, 16, 16},
		EncodedLength: func(b, r int) int { return r * 8 },
		Accepts:       func(r rune) bool { return uint32(r) < 0x100 },
		Transform: func(s string) (Segment, bool) {
			t, err := charmap.ISO8859_1.NewEncoder().String(s)
			return Segment{t, Byte}, err == nil
		},
	},
	ECI: {
		Name:      "eci",
		Indicator: 7,
		Accepts:   nothing,
		Valid: func(s string) bool {
			// This package only ever emits the single-byte UTF-8
			// assignment (value 26), so the only valid payload is
			// that one designator byte.
			return s == "\x1a"
		},
	},
}

// numStdModes is the number of entries in the stdModes literal above
// (Numeric..ECI). It is used instead of len(stdModes) to compute
// shiftJISBytes because Kanji's Transform closure, which is part of
// the stdModes initializer, already refers to shiftJISBytes; deriving
// shiftJISBytes from len(stdModes) would make the two variables'
// initializers depend on each other, an initialization cycle the
// compiler rejects even though the closure isn't invoked until later.
const numStdModes = 6

// shiftJISBytes is an internal mode used only as the target of
// Kanji's Transform: it encodes 13-bit Shift-JIS character pairs
// already produced by the Shift-JIS transcoder. It is never exposed
// as a public Mode constant; Kanji is the public entry point.
var shiftJISBytes = Mode(numStdModes)

func init() {
	stdModes = append(stdModes, ModeEncoder{
		Name:          "shift-jis-kanji",
		Indicator:     8,
		CountLength:   [7]byte{0, 0, 3, 4, 8, 10, 12},
		EncodedLength: func(b, r int) int { return b >> 1 * 13 },
		Count:         func(s string) int { return len(s) >> 1 },
		CutRune: func(s string) (rune, int) {
			return rune(s[0])<<8 | rune(s[1]), 2
		},
		Accepts: func(r rune) bool {
			const maxk = 0x1fff/0xc0<<8 | 0x1fff%0xc0 + 0xc140
			return uint32(r^0x8000) < maxk-0x8000+1
		},
		Encode2: func(b [2]byte) (uint32, int) {
			return uint32(b[0]&^0xc0)*0xc0 + uint32(b[1]) - 0x100, 13
		},
	})
	modep.Store(&stdModes)
}

var (
	modep    atomic.Pointer[[]ModeEncoder] // registered modes
	modeLock sync.Mutex                    // AddMode write lock
)

func getMode(mode Mode) *ModeEncoder {
	if modes := *modep.Load(); mode >= 0 && int(mode) < len(modes) {
		return &modes[mode]
	}
	return nil
}

func (mode Mode) String() string {
	if m := getMode(mode); m != nil {
		return m.Name
	}
	return strconv.Itoa(int(mode))
}

// GetMode returns a copy of the ModeEncoder for mode, or nil if mode
// is not registered. Useful as a starting point for a new mode built
// with AddMode.
func GetMode(mode Mode) *ModeEncoder {
	if m := getMode(mode); m != nil {
		mm := *m
		return &mm
	}
	return nil
}

// AddMode registers a new encoding mode, returning its Mode number,
// or -1 if the mode table is full (32768 entries).
func AddMode(m *ModeEncoder) Mode {
	var mode Mode = -1
	modeLock.Lock()
	if modes := *modep.Load(); len(modes) < 0x8000 {
		mode = Mode(len(modes))
		modes = append(modes, *m)
		modep.Store(&modes)
	}
	modeLock.Unlock()
	return mode
}

// MinClass returns the lowest version size class in which mode is
// encodable: modes whose indicator is not a single set bit (i.e. that
// have no short Micro QR indicator) are only valid in regular
// versions (Class0 and up).
func (mode Mode) MinClass() int {
	if m := getMode(mode); m != nil {
		if ind := m.Indicator; ind&(ind-1) == 0 {
			return min(int(ind-1), ClassM3)
		}
	}
	return Class0
}

// length returns the length in bits of a valid string of the given
// length in bytes and runes encoded by m at the given version size
// class, including the mode indicator and count field.
func (m *ModeEncoder) length(bytes, runes, class int) int {
	n := min(class, 4) + int(m.CountLength[class])
	if f := m.EncodedLength; f != nil {
		n += f(bytes, runes)
	} else {
		n += bytes * 8
	}
	return n
}

// Length returns the length in bits of a valid string of the given
// length in bytes and runes encoded in mode at the given version size
// class, including the header. Length returns 0 if mode is invalid.
func (mode Mode) Length(bytes, runes, class int) int {
	if m := getMode(mode); m != nil {
		return m.length(bytes, runes, class)
	}
	return 0
}

// Is reports whether r is encodable in mode.
func Is(r rune, mode Mode) bool {
	m := getMode(mode)
	return m != nil && (m.Accepts == nil || m.Accepts(r))
}

// A Segment describes a piece of text or data to encode in a single
// mode.
type Segment struct {
	Text string
	Mode Mode
}

// SegmentError reports that a segment's text is not valid for its
// mode.
type SegmentError Segment

func (e SegmentError) Error() string {
	if m := getMode(e.Mode); m != nil {
		return fmt.Sprintf("coding: non-%s string %#q", m.Name, e.Text)
	}
	return fmt.Sprintf("coding: invalid mode %d", e.Mode)
}

// ModeError reports an unregistered Mode number.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("coding: invalid mode %s", Mode(e))
}

// CompatError reports that a mode has no indicator in a given
// version.
type CompatError struct {
	Mode
	Version
}

func (e CompatError) Error() string {
	return fmt.Sprintf("coding: mode %s not encodable in version %s",
		e.Mode, e.Version)
}

// isValid reports whether seg is valid for encoder m.
func (m *ModeEncoder) isValid(seg Segment) bool {
	if f := m.Valid; f != nil {
		return f(seg.Text)
	}
	is := m.Accepts
	if is == nil {
		return true
	}
	if cut := m.CutRune; cut != nil {
		for s := seg.Text; s != ""; {
			r, sz := cut(s)
			s = s[sz:]
			if !is(r) {
				return false
			}
		}
		return true
	}
	for _, r := range seg.Text {
		if !is(r) {
			return false
		}
	}
	return true
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	if m := getMode(seg.Mode); m != nil {
		return m.isValid(seg)
	}
	return false
}

// EncodedLength returns the encoded length in bits of seg at the
// given version size class, including its header. It returns 0 if
// mode is invalid. The segment is not validated.
func (seg Segment) EncodedLength(class int) int {
	m := getMode(seg.Mode)
	if m == nil {
		return 0
	}
	var rlen int
	if el := m.EncodedLength; el == nil || el(0, 0x100) == 0 {
	} else if cut := m.CutRune; cut != nil {
		for s := seg.Text; s != ""; rlen++ {
			_, sz := cut(s)
			s = s[sz:]
		}
	} else {
		rlen = utf8.RuneCountInString(seg.Text)
	}
	return m.length(len(seg.Text), rlen, class)
}

// transform transforms seg for encoding, returning the transformed
// segment, its ModeEncoder, and an error if seg is invalid.
func (seg Segment) transform() (Segment, *ModeEncoder, error) {
	m := getMode(seg.Mode)
	if m == nil {
		return Segment{}, nil, ModeError(seg.Mode)
	}
	if m.Transform == nil {
		return seg, m, nil
	}
	if !m.isValid(seg) {
		return Segment{}, nil, SegmentError(seg)
	}
	ts, ok := m.Transform(seg.Text)
	if !ok {
		return Segment{}, nil, SegmentError(seg)
	}
	tm := getMode(ts.Mode)
	if tm == nil || tm.Transform != nil {
		return Segment{}, nil, ModeError(seg.Mode)
	}
	return ts, tm, nil
}

// Transform transforms seg for encoding. The transformed segment is
// not validated.
func (seg Segment) Transform() (Segment, error) {
	if seg.Mode < Kanji {
		return seg, nil
	}
	ts, _, err := seg.transform()
	return ts, err
}

// Encode writes seg, encoded for the given version size class, to b.
func (seg Segment) Encode(b *Bits, class int) error {
	ts, m, err := seg.transform()
	if err != nil {
		return err
	}
	if !m.isValid(ts) {
		return SegmentError(seg)
	}
	s := ts.Text

	ind := uint32(m.Indicator)
	ilen := 4
	if class < 4 {
		ilen = class
		ii := ind>>1 - ind>>3
		if ind&(ind-1) != 0 || ii >= 1<<uint(ilen) {
			return CompatError{seg.Mode, Version(class) + M1}
		}
		ind = ii
	}
	b.Write(ind, ilen)

	w := len(s)
	if m.Count != nil {
		w = m.Count(s)
	}
	b.Write(uint32(w), int(m.CountLength[class]))

	enc3, enc2, enc1 := m.Encode3, m.Encode2, m.Encode1
	switch {
	case enc3 != nil || enc2 != nil || enc1 != nil:
		if enc3 != nil {
			for len(s) >= 3 {
				b.Write(enc3([3]byte{s[0], s[1], s[2]}))
				s = s[3:]
			}
		}
		if enc2 != nil {
			for len(s) >= 2 {
				b.Write(enc2([2]byte{s[0], s[1]}))
				s = s[2:]
			}
		}
		if enc1 != nil {
			for len(s) >= 1 {
				b.Write(enc1(s[0]))
				s = s[1:]
			}
		} else if s != "" {
			panic("coding: " + m.Name + " mode internal error")
		}
	default:
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
	}
	return nil
}

