// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements GF(256) arithmetic and the
// Reed-Solomon error-correction coding built on it, as used by
// QR codes and Micro QR codes.
package gf256

// A Field represents an instance of GF(256) arithmetic with a
// particular representation. Fields are immutable once built by
// NewField and may be shared by any number of RSEncoders.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[n] == exp[n%255] for all n
}

// NewField returns a new field corresponding to the polynomial
// poly and generator value gen.
//
// The QR code standard (ISO/IEC 18004) defines its Reed-Solomon
// code using the field GF(256) with the primitive polynomial
// x⁸+x⁴+x³+x²+1 (0x11d) and generator element α = 2.
func NewField(poly, gen int) *Field {
	f := new(Field)
	x := 1
	for i := 0; i < 255; i++ {
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x *= gen
		if x >= 256 {
			x ^= poly
		}
	}
	return f
}

// Add returns the sum of x and y in the field. GF(2^n) addition is XOR.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns gen**e where gen is the generator passed to NewField.
func (f *Field) Exp(e int) byte {
	for e < 0 {
		e += 255
	}
	return f.exp[e%255]
}

// Log returns the logarithm of x in the field's base (the
// generator passed to NewField). Log panics if x == 0.
func (f *Field) Log(x byte) int {
	if x == 0 {
		panic("gf256: log of zero")
	}
	return int(f.log[x])
}

// Mul returns the product x*y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Inv returns the multiplicative inverse of x in the field.
// Inv panics if x == 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		panic("gf256: inverse of zero")
	}
	return f.exp[255-int(f.log[x])]
}

// An RSEncoder implements Reed-Solomon encoding over a given field
// using a given number of error correction bytes.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte // generator polynomial, descending order, gen[0] == 1
}

// NewRSEncoder returns a new Reed-Solomon encoder over field f with
// c check bytes.
//
// The resulting RSEncoder expects to be given a data codeword block
// of some fixed length and returns the corresponding check bytes,
// computed as the remainder of the data polynomial times x^c divided
// by the degree-c generator polynomial ∏_{i=0}^{c-1}(x - α^i).
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, gen: generator(f, c)}
}

// generator computes the degree-c Reed-Solomon generator polynomial
// ∏_{i=0}^{c-1} (x - α^i) over f, in descending-order coefficients
// (gen[0] is the x^c coefficient, always 1; gen[c] is the constant
// term).
func generator(f *Field, c int) []byte {
	gen := make([]byte, 1, c+1)
	gen[0] = 1
	for i := 0; i < c; i++ {
		// gen *= (x - α^i); subtraction is XOR in GF(2^n), so this
		// is (x + α^i).
		root := f.Exp(i)
		next := make([]byte, len(gen)+1)
		for j, g := range gen {
			next[j] ^= g
			next[j+1] ^= f.Mul(g, root)
		}
		gen = next
	}
	return gen
}

// ECC writes to check the c error correction bytes for data, where
// c == len(check) is the value passed to NewRSEncoder.
func (e *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != e.c {
		panic("gf256: invalid check byte length")
	}
	for i := range check {
		check[i] = 0
	}
	gen := e.gen[1:] // leading coefficient gen[0] == 1 is implicit below
	for _, b := range data {
		coef := b ^ check[0]
		copy(check, check[1:])
		check[len(check)-1] = 0
		if coef != 0 {
			for j, g := range gen {
				if g != 0 {
					check[j] ^= e.f.Mul(coef, g)
				}
			}
		}
	}
}
