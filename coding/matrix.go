// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Matrix holds the modules of a QR or Micro QR symbol as it's being
// built: which are dark, and which are occupied by a function pattern
// (finder, separator, timing, alignment, format or version
// information, or the dark module) and therefore off limits to data
// placement.
//
// A freshly constructed Matrix has every function pattern already
// drawn and reserved; format and version information cells are
// reserved but left light until WriteFormatInfo and WriteVersionInfo
// fill them in once the mask pattern is known.
type Matrix struct {
	size int
	dark []bool
	used []bool
}

// NewMatrix returns a Matrix for version v with all function patterns
// drawn and reserved.
func NewMatrix(v Version) *Matrix {
	n := v.Size()
	m := &Matrix{size: n, dark: make([]bool, n*n), used: make([]bool, n*n)}
	m.addFinders(v)
	m.addSeparators(v)
	m.addTiming(v)
	m.addAlignment(v)
	m.reserveFormatInfo(v)
	if !v.IsMicro() {
		m.reserveVersionInfo(v)
		m.set(n-8, 8, true)
	}
	return m
}

// Size returns the number of modules on a side of m.
func (m *Matrix) Size() int { return m.size }

func (m *Matrix) idx(r, c int) int { return r*m.size + c }

// Dark reports whether the module at row r, column c is dark.
func (m *Matrix) Dark(r, c int) bool { return m.dark[m.idx(r, c)] }

// Used reports whether the module at row r, column c is occupied by a
// function pattern, and therefore unavailable for data placement.
func (m *Matrix) Used(r, c int) bool { return m.used[m.idx(r, c)] }

// set draws a module and marks it used.
func (m *Matrix) set(r, c int, dark bool) {
	i := m.idx(r, c)
	m.dark[i] = dark
	m.used[i] = true
}

// reserve marks a module used without changing its color, for cells
// filled in later by WriteFormatInfo or WriteVersionInfo.
func (m *Matrix) reserve(r, c int) { m.used[m.idx(r, c)] = true }

// flip inverts the color of a module without changing its used
// status, for the mask engine to toggle and untoggle data modules
// while trying candidate masks.
func (m *Matrix) flip(r, c int) {
	i := m.idx(r, c)
	m.dark[i] = !m.dark[i]
}

// PutData sets a data module at row r, column c that hasn't already
// been claimed by a function pattern. It reports whether the module
// was free. The module stays unused, so the mask engine still
// treats it as data.
func (m *Matrix) PutData(r, c int, dark bool) bool {
	if m.Used(r, c) {
		return false
	}
	m.dark[m.idx(r, c)] = dark
	return true
}

// ring returns the distance to the nearest edge of a sz×sz square,
// used to draw finder and alignment patterns as concentric rings: the
// outer ring (distance 0) and the center (distance sz/2 and up) are
// dark, the ring in between (distance 1) is light.
func ring(dr, dc, sz int) int {
	return min(min(dr, dc), min(sz-1-dr, sz-1-dc))
}

func (m *Matrix) addFinder(r0, c0 int) {
	for dr := 0; dr < 7; dr++ {
		for dc := 0; dc < 7; dc++ {
			m.set(r0+dr, c0+dc, ring(dr, dc, 7) != 1)
		}
	}
}

func (m *Matrix) addFinders(v Version) {
	n := m.size
	m.addFinder(0, 0)
	if v.IsMicro() {
		return
	}
	m.addFinder(0, n-7)
	m.addFinder(n-7, 0)
}

// addSeparators draws the light, one-module-wide border isolating
// each finder pattern from the data area, per §6.3.4 of ISO/IEC 18004.
func (m *Matrix) addSeparators(v Version) {
	n := m.size
	// top-left, always present
	for i := 0; i < 8; i++ {
		m.set(7, i, false)
		m.set(i, 7, false)
	}
	if v.IsMicro() {
		return
	}
	// top-right
	for i := 0; i < 8; i++ {
		m.set(7, n-8+i, false)
		m.set(i, n-8, false)
	}
	// bottom-left
	for i := 0; i < 8; i++ {
		m.set(n-8, i, false)
		m.set(n-8+i, 7, false)
	}
}

// addTiming draws the alternating dark/light timing patterns that let
// a reader establish module coordinates, per §6.3.5. Regular symbols
// run them along row/column 6 between the finder patterns; Micro
// symbols, having only the one top-left finder, run them along
// row/column 0 starting just past it.
func (m *Matrix) addTiming(v Version) {
	n := m.size
	row, lo, hi := 6, 8, n-9
	if v.IsMicro() {
		row, lo, hi = 0, 8, n-1
	}
	for i := lo; i <= hi; i++ {
		dark := i%2 == 0
		m.set(row, i, dark)
		m.set(i, row, dark)
	}
}

func (m *Matrix) addAlignment(v Version) {
	for _, p := range AlignmentCenters(v) {
		r0, c0 := p[0]-2, p[1]-2
		for dr := 0; dr < 5; dr++ {
			for dc := 0; dc < 5; dc++ {
				m.set(r0+dr, c0+dc, ring(dr, dc, 5) != 1)
			}
		}
	}
}

// formatCoordsA and formatCoordsB return the 15 cell coordinates of
// the two copies of a regular symbol's format information, least
// significant bit first, as specified by Figure 19 of ISO/IEC 18004:
// A runs down column 8 skipping the timing row, B runs along row 8
// skipping the timing column.
func formatCoordsA(n int) [15][2]int {
	var c [15][2]int
	i := 0
	for r := 0; r <= 5; r++ {
		c[i] = [2]int{r, 8}
		i++
	}
	c[i] = [2]int{7, 8}
	i++
	c[i] = [2]int{8, 8}
	i++
	for r := n - 7; r <= n-1; r++ {
		c[i] = [2]int{r, 8}
		i++
	}
	return c
}

func formatCoordsB(n int) [15][2]int {
	var c [15][2]int
	i := 0
	for col := n - 1; col >= n-8; col-- {
		c[i] = [2]int{8, col}
		i++
	}
	c[i] = [2]int{8, 7}
	i++
	for col := 5; col >= 0; col-- {
		c[i] = [2]int{8, col}
		i++
	}
	return c
}

// microFormatCoords returns the 15 cell coordinates of a Micro
// symbol's single format information copy, least significant bit
// first: down column 8 from row 1 to row 8, then along row 8 from
// column 7 down to column 1.
func microFormatCoords() [15][2]int {
	var c [15][2]int
	i := 0
	for r := 1; r <= 8; r++ {
		c[i] = [2]int{r, 8}
		i++
	}
	for col := 7; col >= 1; col-- {
		c[i] = [2]int{8, col}
		i++
	}
	return c
}

func (m *Matrix) reserveFormatInfo(v Version) {
	if v.IsMicro() {
		for _, rc := range microFormatCoords() {
			m.reserve(rc[0], rc[1])
		}
		return
	}
	n := m.size
	for _, rc := range formatCoordsA(n) {
		m.reserve(rc[0], rc[1])
	}
	for _, rc := range formatCoordsB(n) {
		m.reserve(rc[0], rc[1])
	}
}

// versionCoords returns the 18 cell coordinates of each of a regular
// symbol's two version information blocks, least significant bit
// first: block A is the 3×6 block above the bottom-left finder,
// block B its transpose beside the top-right finder, per Figure 25.
func versionCoordsA(n int) [18][2]int {
	var c [18][2]int
	for i := 0; i < 18; i++ {
		c[i] = [2]int{n - 11 + i%3, i / 3}
	}
	return c
}

func versionCoordsB(n int) [18][2]int {
	var c [18][2]int
	for i := 0; i < 18; i++ {
		c[i] = [2]int{i / 3, n - 11 + i%3}
	}
	return c
}

func (m *Matrix) reserveVersionInfo(v Version) {
	if v < 7 {
		return
	}
	n := m.size
	for _, rc := range versionCoordsA(n) {
		m.reserve(rc[0], rc[1])
	}
	for _, rc := range versionCoordsB(n) {
		m.reserve(rc[0], rc[1])
	}
}
