// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math"

// maskPredicates are the eight mask patterns of §8.8.1 of
// ISO/IEC 18004, re-derived from the standard's table rather than any
// particular encoder's bit-packed form; patterns 5 and 6 only look
// alike at a glance.
var maskPredicates = [8]func(r, c int) bool{
	func(r, c int) bool { return (r+c)%2 == 0 },
	func(r, c int) bool { return r%2 == 0 },
	func(r, c int) bool { return c%3 == 0 },
	func(r, c int) bool { return (r+c)%3 == 0 },
	func(r, c int) bool { return (r/2+c/3)%2 == 0 },
	func(r, c int) bool { return (r*c)%2+(r*c)%3 == 0 },
	func(r, c int) bool { return ((r*c)%2+(r*c)%3)%2 == 0 },
	func(r, c int) bool { return ((r+c)%2+(r*c)%3)%2 == 0 },
}

// microMaskPattern maps a Micro QR mask index, 0 to 3, to the regular
// pattern it reuses, per §8.8.1.
var microMaskPattern = [4]int{1, 4, 6, 7}

func maskPredicate(v Version, pattern int) func(r, c int) bool {
	if v.IsMicro() {
		pattern = microMaskPattern[pattern]
	}
	return maskPredicates[pattern]
}

// numMaskPatterns returns the number of candidate masks for v: 8 for
// regular symbols, 4 for Micro.
func numMaskPatterns(v Version) int {
	if v.IsMicro() {
		return 4
	}
	return 8
}

// applyMask toggles every data module of m for which pattern's
// predicate holds. Calling it twice with the same pattern restores m,
// since XOR is its own inverse; the mask engine relies on this to try
// a candidate and undo it without a second matrix.
func applyMask(m *Matrix, v Version, pattern int) {
	pred := maskPredicate(v, pattern)
	n := m.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if !m.Used(r, c) && pred(r, c) {
				m.flip(r, c)
			}
		}
	}
}

// SelectMask tries every candidate mask pattern for v against m's
// current data modules, scores each with the appropriate penalty
// rule, and leaves m masked with the lowest-scoring pattern, ties
// broken by the lowest pattern index. It returns the chosen pattern.
func SelectMask(m *Matrix, v Version) int {
	best, bestScore := 0, -1
	for p := 0; p < numMaskPatterns(v); p++ {
		applyMask(m, v, p)
		score := penalty(m, v)
		applyMask(m, v, p) // undo; re-applied below if it wins
		if bestScore < 0 || score < bestScore {
			bestScore, best = score, p
		}
	}
	applyMask(m, v, best)
	return best
}

func penalty(m *Matrix, v Version) int {
	if v.IsMicro() {
		return microPenalty(m)
	}
	return regularPenalty(m)
}

// regularPenalty computes the N1-N4 penalty rules of §8.8.2.
func regularPenalty(m *Matrix) int {
	n := m.Size()
	total := 0
	for r := 0; r < n; r++ {
		total += runPenalty(n, func(i int) bool { return m.Dark(r, i) })
		total += finderPenalty(n, func(i int) bool { return m.Dark(r, i) })
	}
	for c := 0; c < n; c++ {
		total += runPenalty(n, func(i int) bool { return m.Dark(i, c) })
		total += finderPenalty(n, func(i int) bool { return m.Dark(i, c) })
	}
	for r := 0; r < n-1; r++ {
		for c := 0; c < n-1; c++ {
			d := m.Dark(r, c)
			if m.Dark(r, c+1) == d && m.Dark(r+1, c) == d && m.Dark(r+1, c+1) == d {
				total += 3
			}
		}
	}
	dark := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if m.Dark(r, c) {
				dark++
			}
		}
	}
	pct := float64(dark) * 100 / float64(n*n)
	total += 10 * int(math.Round(math.Abs(pct-50)/5))
	return total
}

// runPenalty implements N1: for every run of 5 or more same-colored
// modules along a line of length n given by at(i), add run-2.
func runPenalty(n int, at func(i int) bool) int {
	total, run := 0, 1
	prev := at(0)
	for i := 1; i < n; i++ {
		v := at(i)
		if v == prev {
			run++
			continue
		}
		if run >= 5 {
			total += run - 2
		}
		run, prev = 1, v
	}
	if run >= 5 {
		total += run - 2
	}
	return total
}

// finderLead is the eleven-module sequence of N3
// (dark-light-dark-dark-dark-light-dark-light-light-light-light) and
// finderLeadRev its mirror image; finderPenalty looks for either one
// in every window of a line.
var (
	finderLead    = [11]bool{true, false, true, true, true, false, true, false, false, false, false}
	finderLeadRev = reverseFinder(finderLead)
)

func reverseFinder(p [11]bool) [11]bool {
	var r [11]bool
	for i, v := range p {
		r[len(p)-1-i] = v
	}
	return r
}

// finderPenalty implements N3: add 40 for every window matching the
// pattern 10111010000 or its reverse.
func finderPenalty(n int, at func(i int) bool) int {
	total := 0
	for i := 0; i+11 <= n; i++ {
		if windowMatches(i, at, finderLead) || windowMatches(i, at, finderLeadRev) {
			total += 40
		}
	}
	return total
}

func windowMatches(start int, at func(i int) bool, pat [11]bool) bool {
	for i, want := range pat {
		if at(start+i) != want {
			return false
		}
	}
	return true
}

// microPenalty implements the Micro QR evaluation of §8.8.3: S1 is
// the dark-module count along the rightmost column excluding the
// timing row, S2 along the bottom row excluding the timing column;
// the lower of the two weighted sums wins.
func microPenalty(m *Matrix) int {
	n := m.Size()
	s1, s2 := 0, 0
	for r := 1; r < n; r++ {
		if m.Dark(r, n-1) {
			s1++
		}
	}
	for c := 1; c < n; c++ {
		if m.Dark(n-1, c) {
			s2++
		}
	}
	if s1 <= s2 {
		return 16*s1 + s2
	}
	return 16*s2 + s1
}
