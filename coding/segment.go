// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strings"

// Bit positions used to record, per span of source runes, which of
// the three auto-selectable modes can encode it. Kanji is excluded
// from auto-segmentation entirely (see segModes) and has no bit here.
const (
	bitNumeric uint8 = 1 << iota
	bitAlpha
	bitByteMode
)

// segModes lists, in bit order, the modes classify and split choose
// among. ECI is handled separately, as a header rather than a segment
// competing for the same text. Kanji is deliberately not a candidate:
// per §4.1, it is selected only when explicitly requested, never by
// auto-segmentation. This also sidesteps IsKanji being only a coarse
// Unicode-block prefilter rather than an exact JIS X 0208 membership
// test — auto-segmentation never has to trust it as an authority.
var segModes = [3]Mode{Numeric, Alphanumeric, Byte}

// span is a maximal run of source runes encodable in the same set of
// the three standard auto-selectable modes, found by classify.
type span struct {
	start, byteLen, runeLen int
	modes                   uint8
	seg                     [3]segChain
}

// segChain is one candidate tail of an optimal segmentation: a
// segment starting at this span, encoded in mode, linked to the
// optimal segmentation of what follows it.
type segChain struct {
	next                    *segChain
	start, byteLen, runeLen int
	weight                  int
	mode                    Mode
}

const infWeight = 1 << 30

// classify splits text into spans of runes encodable in the same set
// of modes, the way the encoded character classes shift as Numeric,
// Alphanumeric or plain Byte candidates.
func classify(text string) []span {
	if text == "" {
		return nil
	}
	type rinfo struct {
		byteOff int
		modes   uint8
	}
	infos := make([]rinfo, 0, len(text))
	for i, r := range text {
		var m uint8
		switch {
		case Is(r, Numeric):
			m = bitNumeric | bitAlpha | bitByteMode
		case Is(r, Alphanumeric) || (r >= 'a' && r <= 'z'):
			m = bitAlpha | bitByteMode
		default:
			m = bitByteMode
		}
		infos = append(infos, rinfo{i, m})
	}

	var spans []span
	start, cur, runes := 0, infos[0].modes, 0
	for i, info := range infos {
		if info.modes != cur {
			spans = append(spans, span{
				start:   infos[start].byteOff,
				byteLen: info.byteOff - infos[start].byteOff,
				runeLen: runes,
				modes:   cur,
			})
			start, cur, runes = i, info.modes, 0
		}
		runes++
	}
	spans = append(spans, span{
		start:   infos[start].byteOff,
		byteLen: len(text) - infos[start].byteOff,
		runeLen: runes,
		modes:   cur,
	})
	return spans
}

/*
split returns the optimal segmentation of the spans for a symbol of
the given version size class: the chain of segments, each in a mode
valid for its span, whose total encoded length (headers included) is
smallest.

Starting from the last span, it builds, for every mode the span
admits, a one-segment chain and its weight. Walking backwards, each
earlier span tries every admissible mode against every mode the
following span settled on: picking the same mode merges the two spans
into one segment (one header, not two); picking a different mode
chains them as separate segments. The lowest-weight choice per mode is
kept, and the lowest-weight choice among a span's modes is the answer
once the walk reaches the first span.
*/
func split(spans []span, class int) *segChain {
	n := len(spans)
	if n == 0 {
		return nil
	}
	fill := func(i int, next *[3]segChain) {
		v := &spans[i]
		for j, mode := range segModes {
			seg := &v.seg[j]
			*seg = segChain{weight: infWeight}
			if v.modes&(1<<j) == 0 {
				continue
			}
			weight := mode.Length(v.byteLen, v.runeLen, class)
			if next == nil {
				*seg = segChain{
					start: v.start, byteLen: v.byteLen, runeLen: v.runeLen,
					weight: weight, mode: mode,
				}
				continue
			}
			for k := range segModes {
				nk := &next[k]
				if nk.weight == infWeight {
					continue
				}
				c := segChain{
					next:  nk,
					start: v.start, byteLen: v.byteLen, runeLen: v.runeLen,
					weight: weight, mode: mode,
				}
				if k == j {
					c.byteLen += c.next.byteLen
					c.runeLen += c.next.runeLen
					c.next = c.next.next
					c.weight = mode.Length(c.byteLen, c.runeLen, class)
				}
				if c.next != nil {
					c.weight += c.next.weight
				}
				if c.weight < seg.weight {
					*seg = c
				}
			}
		}
	}
	fill(n-1, nil)
	for i := n - 2; i >= 0; i-- {
		fill(i, &spans[i+1].seg)
	}
	best := &spans[0].seg[0]
	for j := 1; j < len(segModes); j++ {
		if spans[0].seg[j].weight < best.weight {
			best = &spans[0].seg[j]
		}
	}
	return best
}

// AutoSegments splits text into an optimal sequence of Numeric,
// Alphanumeric and Byte segments for a symbol of the given version
// size class, per §4.2's dynamic program. Kanji is never chosen by
// auto-segmentation, per §4.1: it's only used when a caller explicitly
// requests it with a forced Kanji segment.
func AutoSegments(text string, class int) []Segment {
	spans := classify(text)
	chain := split(spans, class)
	var segs []Segment
	for c := chain; c != nil; c = c.next {
		s := text[c.start : c.start+c.byteLen]
		if c.mode == Alphanumeric {
			// classify admits lowercase letters into Alphanumeric
			// spans; Alphanumeric itself only encodes uppercase, so
			// auto-segmentation uppercases them here rather than
			// falling back to Byte mode.
			s = strings.ToUpper(s)
		}
		segs = append(segs, Segment{Text: s, Mode: c.mode})
	}
	return segs
}
