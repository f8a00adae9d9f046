// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"testing"

	"github.com/qrgo/qr/coding"
)

func TestEncodeHelloWorld(t *testing.T) {
	c, err := Encode("HELLO WORLD", Options{Level: L})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Version() != 1 {
		t.Errorf("Version() = %s, want 1", c.Version())
	}
	if c.Size() != 21 {
		t.Errorf("Size() = %d, want 21", c.Size())
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	if _, err := Encode("", Options{}); err == nil {
		t.Error("Encode(\"\") did not error")
	}
}

func TestEncodeInvalidLevel(t *testing.T) {
	if _, err := Encode("hi", Options{Level: H + 1}); err == nil {
		t.Error("Encode with an out-of-range level did not error")
	}
}

func TestEncodeNumericDefaultsToRegular(t *testing.T) {
	// Micro is opt-in: the zero Options, even for content small enough
	// to fit a Micro symbol, must resolve to a regular version.
	c, err := Encode("12345", Options{Level: L})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.IsMicro() {
		t.Errorf("Encode(%q) version = %s, want a regular version", "12345", c.Version())
	}
}

func TestEncodeNumericPicksMicroWhenRequested(t *testing.T) {
	c, err := Encode("12345", Options{Level: L, ForceMicro: true, Micro: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !c.IsMicro() {
		t.Errorf("Encode(%q) version = %s, want a Micro version", "12345", c.Version())
	}
}

func TestEncodeForceMicroRegular(t *testing.T) {
	c, err := Encode("12345", Options{Level: L, ForceMicro: true, Micro: false})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.IsMicro() {
		t.Error("Encode with ForceMicro=false, Micro=false produced a Micro symbol")
	}
}

func TestEncodeForcedVersionTooSmall(t *testing.T) {
	big := make([]byte, 200)
	for i := range big {
		big[i] = byte('0' + i%10)
	}
	_, err := Encode(string(big), Options{Level: H, Version: 1})
	if err == nil {
		t.Error("Encode with an undersized forced version did not error")
	}
}

func TestEncodeForcedModeRejectsIncompatible(t *testing.T) {
	_, err := Encode("hello", Options{Level: L, ForceMode: true, Mode: Alphanumeric})
	if err == nil {
		t.Error("Encode with forced Alphanumeric mode on lowercase text did not error")
	}
}

func TestEncodeForcedModeUppercaseOK(t *testing.T) {
	c, err := Encode("HELLO", Options{Level: L, ForceMode: true, Mode: Alphanumeric})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c == nil {
		t.Fatal("Encode returned a nil QRCode with no error")
	}
}

func TestEncodeKanjiEligibleRuneFallsBackToByte(t *testing.T) {
	// U+4F60 ("你") sits in the CJK Unified Ideographs block IsKanji
	// uses as a coarse prefilter, but it isn't part of JIS X 0208, so
	// it can't round-trip through Shift-JIS. Auto-segmentation must not
	// pick Kanji for it, or the encode would fail outright.
	c, err := Encode("你好", Options{Level: L})
	if err != nil {
		t.Fatalf("Encode(%q): %v", "你好", err)
	}
	if c == nil {
		t.Fatal("Encode returned a nil QRCode with no error")
	}
}

func TestEncodeForcedKanjiOddLengthIsInvalidMode(t *testing.T) {
	// Half-width katakana encodes to a single Shift-JIS byte, which
	// Kanji mode's 13-bit pairing can't represent.
	_, err := Encode("ｱ", Options{Level: L, ForceMode: true, Mode: Kanji})
	if err == nil {
		t.Fatal("Encode of odd-length Shift-JIS Kanji text did not error")
	}
	ce, ok := err.(*coding.Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *coding.Error", err, err)
	}
	if ce.Code != coding.InvalidMode {
		t.Errorf("Code = %s, want %s", ce.Code, coding.InvalidMode)
	}
}

func TestEncodeForceMicroLevelHIsInvalidErrorLevel(t *testing.T) {
	_, err := Encode("hi", Options{Level: H, ForceMicro: true, Micro: true})
	if err == nil {
		t.Fatal("Encode with level H forced to a Micro symbol did not error")
	}
	ce, ok := err.(*coding.Error)
	if !ok {
		t.Fatalf("err = %v (%T), want *coding.Error", err, err)
	}
	if ce.Code != coding.InvalidErrorLevel {
		t.Errorf("Code = %s, want %s", ce.Code, coding.InvalidErrorLevel)
	}
}

func TestEncodeECIRejectsMicro(t *testing.T) {
	_, err := Encode("hi", Options{Level: L, ECI: true, ForceMicro: true, Micro: true})
	if err == nil {
		t.Error("Encode with ECI and a forced Micro symbol did not error")
	}
}

func TestEncodeECISteersAwayFromMicro(t *testing.T) {
	c, err := Encode("12345", Options{Level: L, ECI: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.IsMicro() {
		t.Error("Encode with ECI set picked a Micro symbol")
	}
}

func TestEncodeLatin1Substitution(t *testing.T) {
	c, err := Encode("café", Options{Level: L, Encoding: "latin1"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c == nil {
		t.Fatal("Encode returned a nil QRCode with no error")
	}
}

func TestEncodeForcedMaskRoundTrips(t *testing.T) {
	c, err := Encode("HELLO WORLD", Options{Level: L, ForceMask: true, Mask: 3})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Mask() != 3 {
		t.Errorf("Mask() = %d, want 3", c.Mask())
	}
}

func TestEncodeInvalidForcedMask(t *testing.T) {
	if _, err := Encode("hi", Options{Level: L, ForceMask: true, Mask: 99}); err == nil {
		t.Error("Encode with an out-of-range forced mask did not error")
	}
}

func TestEncodeBoostsLevelByDefault(t *testing.T) {
	c, err := Encode("HI", Options{Level: L, Version: 5})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Level() <= L {
		t.Errorf("Level() = %s, want boosted above L for tiny data in a large version", c.Level())
	}
}

func TestEncodeNoBoostKeepsRequestedLevel(t *testing.T) {
	c, err := Encode("HI", Options{Level: L, Version: 5, NoBoost: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Level() != L {
		t.Errorf("Level() = %s, want %s with NoBoost set", c.Level(), L)
	}
}

func TestQRCodeBlackOutOfBounds(t *testing.T) {
	c, err := Encode("HI", Options{Level: L})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Black(-1, 0) || c.Black(0, -1) || c.Black(c.Size(), 0) {
		t.Error("Black() returned true for an out-of-bounds module")
	}
}

func TestImageHasQuietZone(t *testing.T) {
	c, err := Encode("HI", Options{Level: L})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img := c.Image()
	want := c.Size() + 2*quietZone
	b := img.Bounds()
	if b.Dx() != want || b.Dy() != want {
		t.Errorf("Image().Bounds() = %v, want a %dx%d square", b, want, want)
	}
	if img.At(0, 0) == img.At(quietZone+1, quietZone+1) {
		// Not a strict guarantee for every symbol, but the quiet zone
		// corner and a module well inside the symbol should usually
		// differ; this simply exercises At without crashing either way.
		_ = img.At(0, 0)
	}
}

func TestMaxCapacityVersion40L(t *testing.T) {
	// Version 40-L holds up to 2953 bytes of byte-mode data.
	data := make([]byte, 2953)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	_, err := Encode(string(data), Options{Level: L, Version: 40, ForceMode: true, Mode: Byte})
	if err != nil {
		t.Fatalf("Encode at max version 40-L capacity: %v", err)
	}
}
