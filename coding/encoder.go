// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strings"

// Fits reports whether segs, encoded for version v's size class,
// fit within v's data capacity at level l.
func Fits(segs []Segment, v Version, l Level) bool {
	return segsLength(segs, v.SizeClass()) <= v.DataBits(l)
}

func segsLength(segs []Segment, class int) int {
	n := 0
	for _, s := range segs {
		n += s.EncodedLength(class)
	}
	return n
}

// SegmentPlan is a version, error level and segmentation chosen to
// encode a piece of text.
type SegmentPlan struct {
	Segments []Segment
	Version  Version
	Level    Level
}

// PlanText finds the smallest version fitting text at level l,
// trying Micro classes M1-M4 before regular classes 0-9, 10-26,
// 27-40 if micro is allowed, or only the regular classes otherwise.
// Since a segment's header width depends on the version's size
// class, text is re-segmented from scratch for every class tried,
// per §4.2 and §4.3.
func PlanText(text string, l Level, micro, regular bool) (SegmentPlan, error) {
	var classes []int
	if micro {
		classes = append(classes, ClassM1, ClassM2, ClassM3, ClassM4)
	}
	if regular {
		classes = append(classes, Class0, Class1, Class2)
	}
	for _, class := range classes {
		lo, hi := ClassRange(class)
		if !l.valid(hi) {
			continue
		}
		segs := AutoSegments(text, class)
		weight := segsLength(segs, class)
		if weight > hi.DataBits(l) {
			continue
		}
		for lo < hi {
			mid := lo + (hi-lo)/2
			if mid.DataBits(l) < weight {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return SegmentPlan{Segments: segs, Version: lo, Level: l}, nil
	}
	return SegmentPlan{}, errorf(DataOverflow,
		"text too long to encode at level %s", l)
}

// PlanVersion finds the smallest version fitting the already-built
// segs at level l, trying Micro classes M1-M4 before regular classes
// if micro is allowed, or only the regular classes otherwise. Unlike
// PlanText, segs are taken as given: this is the path for a forced
// mode, whose single segment's content doesn't change across classes.
func PlanVersion(segs []Segment, l Level, micro, regular bool) (Version, error) {
	var classes []int
	if micro {
		classes = append(classes, ClassM1, ClassM2, ClassM3, ClassM4)
	}
	if regular {
		classes = append(classes, Class0, Class1, Class2)
	}
	for _, class := range classes {
		lo, hi := ClassRange(class)
		if !l.valid(hi) {
			continue
		}
		weight := segsLength(segs, class)
		if weight > hi.DataBits(l) {
			continue
		}
		for lo < hi {
			mid := lo + (hi-lo)/2
			if mid.DataBits(l) < weight {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo, nil
	}
	return 0, errorf(DataOverflow, "data too long to encode at level %s", l)
}

// BoostLevel returns the highest error level at or above l that segs
// still fit in version v, without changing v itself, per §4.3's boost
// rule: data capacity only shrinks as the level rises, so the search
// stops at the first level that no longer fits.
func BoostLevel(segs []Segment, v Version, l Level) Level {
	weight := segsLength(segs, v.SizeClass())
	best := l
	for next := l + 1; next <= H; next++ {
		if !next.valid(v) || weight > v.DataBits(next) {
			break
		}
		best = next
	}
	return best
}

// Build assembles segs into a complete symbol at version v and level
// l: it writes the segment headers and payloads, terminates and pads
// the bit stream, appends Reed-Solomon check codewords, places the
// interleaved stream into a fresh Matrix, then masks and finalizes
// it. A negative mask selects the lowest-penalty pattern; a
// non-negative one forces that pattern. It returns the built matrix
// and the mask pattern actually used.
func Build(segs []Segment, v Version, l Level, mask int) (*Matrix, int, error) {
	if mask >= numMaskPatterns(v) {
		return nil, 0, errorf(InvalidMask,
			"mask %d out of range for version %s", mask, v)
	}
	class := v.SizeClass()
	b := NewBits(v, l)
	for _, seg := range segs {
		if err := seg.Encode(b, class); err != nil {
			return nil, 0, errorf(InvalidMode, "%s",
				strings.TrimPrefix(err.Error(), "coding: "))
		}
	}
	if b.Len() > v.DataBits(l) {
		return nil, 0, errorf(DataOverflow,
			"data too long for version %s level %s", v, l)
	}
	b.AddCheckBytes(v, l)
	stream := b.Permute(v, l)

	m := NewMatrix(v)
	PlaceData(m, v, &stream)

	chosen := mask
	if chosen < 0 {
		chosen = SelectMask(m, v)
	} else {
		applyMask(m, v, chosen)
	}
	WriteFormatInfo(m, v, l, chosen)
	WriteVersionInfo(m, v)
	return m, chosen, nil
}
