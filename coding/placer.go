// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// PlaceData walks m in the canonical zig-zag order of §7.7.3 of
// ISO/IEC 18004 — column pairs from the bottom-right corner to the
// top-left, alternating up and down at each pair boundary — writing
// one bit from bits, most significant first, into every module not
// already claimed by a function pattern. Regular symbols skip column
// 6, the vertical timing column, entirely; Micro symbols have no such
// column to skip.
//
// bits already carries v's remainder bits, appended by Permute after
// interleaving; once it's exhausted, its Next method keeps returning
// 0 as a safety net, so any free module beyond that still comes out
// light rather than reading past the buffer.
func PlaceData(m *Matrix, v Version, bits *BitStream) {
	n := m.Size()
	skipCol := 6
	if v.IsMicro() {
		skipCol = -1
	}
	col, row := n-2, n-1
	xoff := 1
	up := true
	for col >= 0 {
		c := col + xoff
		if !m.Used(row, c) {
			m.PutData(row, c, bits.Next() != 0)
		}
		if xoff == 1 {
			xoff = 0
			continue
		}
		xoff = 1
		if up {
			if row > 0 {
				row--
			} else {
				up = false
				col -= 2
			}
		} else {
			if row < n-1 {
				row++
			} else {
				up = true
				col -= 2
			}
		}
		if col == skipCol-1 {
			col--
		}
	}
}
