// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/qrgo/qr/gf256"

// Field is the GF(256) field used for all QR and Micro QR
// Reed-Solomon error correction, as specified in ISO/IEC 18004:
// primitive polynomial x⁸+x⁴+x³+x²+1 (0x11d), generator 2.
var Field = gf256.NewField(0x11d, 2)

// Bits is a growable big-endian bit buffer used to assemble the data
// bit stream of a symbol before error correction and placement.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns a Bits with enough capacity preallocated for a
// symbol of the given version and level, doubled when the symbol has
// more than one error-correction block, since interleaving needs a
// second buffer the same size as the first.
func NewBits(v Version, l Level) *Bits {
	n := v.TotalBytes()
	if layout(v, l).nblock > 1 {
		n <<= 1
	}
	return &Bits{b: make([]byte, 0, n)}
}

// Len returns the number of bits written so far.
func (b *Bits) Len() int {
	return b.nbit
}

// Bytes returns the byte-aligned contents of b. It panics if b holds
// a number of bits not divisible by 8.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("coding: fractional byte")
	}
	return b.b
}

func (b *Bits) growTo(n int) {
	for cap(b.b) < n {
		b.b = append(b.b[:cap(b.b)], 0)[:len(b.b)]
	}
}

// Grow ensures b has room for n more bytes without reallocating.
func (b *Bits) Grow(n int) { b.growTo(len(b.b) + n) }

// Add appends n zero bytes to b, byte-aligned, and returns them for
// the caller to fill in directly; used to append check bytes computed
// in place.
func (b *Bits) Add(n int) []byte {
	if b.nbit%8 != 0 {
		panic("coding: fractional byte")
	}
	b.Grow(n)
	start := len(b.b)
	b.b = b.b[:start+n]
	b.nbit = 8 * len(b.b)
	return b.b[start:]
}

// Write appends the low nbit bits of v to b, most significant bit
// first.
func (b *Bits) Write(v uint32, nbit int) {
	v <<= 32 - uint(nbit)
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - uint(rem)))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= uint(rem)
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// padTo adds up to t terminator bits, then zero bits to the next byte
// boundary, then alternating 0xEC/0x11 pad bytes, up to n total bits.
func (b *Bits) padTo(t, n int) {
	b.nbit = min(b.nbit+t, n)
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	if len(b.b) < (n+7)>>3 {
		buf := b.b[len(b.b) : n>>3]
		b.b = b.b[:(n+7)>>3]
		b.b[len(b.b)-1] = 0
		for len(buf) >= 2 {
			buf[0], buf[1] = 0xec, 0x11
			buf = buf[2:]
		}
		if len(buf) > 0 {
			buf[0] = 0xec
		}
	}
	b.nbit = len(b.b) * 8
}

// AddCheckBytes pads b to the data capacity of a symbol of version v
// at level l, appends the terminator and pad pattern per §8.4.9 of
// ISO/IEC 18004, then computes and appends the Reed-Solomon check
// bytes for every block.
//
// For M1 and M3, whose data capacity ends in a 4-bit nibble rather
// than a full byte, the trailing nibble is folded into the following
// check bytes by shifting them left by a nibble, so the final byte
// stream has no partial byte in the middle.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nb := v.DataBits(l)
	if b.nbit > nb {
		panic("coding: too much data")
	}
	lay := layout(v, l)
	b.growTo(v.TotalBytes())
	nt := 4
	if v.IsMicro() {
		nt = int(v-M1)*2 + 3
	}
	b.padTo(nt, nb)

	dat := b.Bytes()
	db := lay.dataLen
	normal := lay.normal
	rs := gf256.NewRSEncoder(Field, lay.check)
	for i := 0; i < lay.nblock; i++ {
		if i == normal {
			db++
		}
		rs.ECC(dat[:db], b.Add(lay.check))
		dat = dat[db:]
	}

	if len(b.Bytes()) != v.TotalBytes() {
		panic("coding: internal error: wrong check byte count")
	}
	if nb&4 != 0 {
		chk := b.b[nb>>3:]
		for i := range chk[:len(chk)-1] {
			chk[i] |= chk[i+1] >> 4
			chk[i+1] <<= 4
		}
	}
}

// interleave interleaves nblock blocks from src into dst, which must
// be of equal length. Blocks earlier than normal are the short ones;
// the remainder hold one extra byte each, per §7.5.2 and §8.5.2 of
// ISO/IEC 18004.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := dst[db*nblock:]
	dst = dst[:db*nblock]
	normal := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j, v := range src[:db] {
			dst[j*nblock+i] = v
		}
		src = src[db:]
		if i >= normal {
			extra[i-normal] = src[0]
			src = src[1:]
		}
	}
}

// Permute returns a BitStream reading the data and check bits of b
// with blocks interleaved per ISO/IEC 18004 §7.5.2, followed by v's
// remainder bits per §7.4.10/§4.5 (always zero), ready for placement
// into the matrix. The returned BitStream may alias b's underlying
// buffer.
func (b *Bits) Permute(v Version, l Level) BitStream {
	lay := layout(v, l)
	src := b.Bytes()
	if len(src) != v.TotalBytes() {
		panic("coding: wrong data length")
	}
	dst := src
	if lay.nblock != 1 {
		if cap(src) < len(src)*2 {
			dst = make([]byte, v.TotalBytes())
		} else {
			dst = src[len(src) : len(src)*2]
		}
		nd := v.dataBytes(l)
		interleave(dst[:nd], src[:nd], lay.nblock)
		interleave(dst[nd:], src[nd:], lay.nblock)
	}
	if v.Remainder() > 0 {
		dst = append(dst, 0)
	}
	return NewBitStream(dst)
}

// BitStream reads bits, most significant first, from an underlying
// byte slice.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Next returns the next bit from s as 0 or 1. Past the end of the
// buffer, Next returns 0, since the remainder bits appended after
// interleaving for some versions are always zero.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> uint(7&^s.pos) & 1
		s.pos++
	}
	return b
}
