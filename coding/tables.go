// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Capacity and block-layout tables, reproduced from ISO/IEC 18004
// Annexes D and E (the same source data as qrencode's qrspec.c, which
// is where the teacher's own generator drew them from).
//
// capacity[v] gives, for version v (1-40, then M1-M4 at indices
// 41-44): the total number of codewords in the symbol, the number of
// remainder bits appended after interleaving, and, for each error
// level L,M,Q,H, the total number of error-correction codewords used
// across all blocks.
//
// blockGroups[v][level] gives the number of error-correction blocks
// for that version and level; combined with capacity, the per-block
// data and check lengths are derived arithmetically (see dataBlocks).

type capacityEntry struct {
	words     int    // total codewords in the symbol
	remainder int    // remainder bits after interleaving
	ec        [4]int // total EC codewords per level, L M Q H
}

var capacity = [45]capacityEntry{
	{},
	{26, 0, [4]int{7, 10, 13, 17}}, // 1
	{44, 7, [4]int{10, 16, 22, 28}},
	{70, 7, [4]int{15, 26, 36, 44}},
	{100, 7, [4]int{20, 36, 52, 64}},
	{134, 7, [4]int{26, 48, 72, 88}}, // 5
	{172, 7, [4]int{36, 64, 96, 112}},
	{196, 0, [4]int{40, 72, 108, 130}},
	{242, 0, [4]int{48, 88, 132, 156}},
	{292, 0, [4]int{60, 110, 160, 192}},
	{346, 0, [4]int{72, 130, 192, 224}}, // 10
	{404, 0, [4]int{80, 150, 224, 264}},
	{466, 0, [4]int{96, 176, 260, 308}},
	{532, 0, [4]int{104, 198, 288, 352}},
	{581, 3, [4]int{120, 216, 320, 384}},
	{655, 3, [4]int{132, 240, 360, 432}}, // 15
	{733, 3, [4]int{144, 280, 408, 480}},
	{815, 3, [4]int{168, 308, 448, 532}},
	{901, 3, [4]int{180, 338, 504, 588}},
	{991, 3, [4]int{196, 364, 546, 650}},
	{1085, 3, [4]int{224, 416, 600, 700}}, // 20
	{1156, 4, [4]int{224, 442, 644, 750}},
	{1258, 4, [4]int{252, 476, 690, 816}},
	{1364, 4, [4]int{270, 504, 750, 900}},
	{1474, 4, [4]int{300, 560, 810, 960}},
	{1588, 4, [4]int{312, 588, 870, 1050}}, // 25
	{1706, 4, [4]int{336, 644, 952, 1110}},
	{1828, 4, [4]int{360, 700, 1020, 1200}},
	{1921, 3, [4]int{390, 728, 1050, 1260}},
	{2051, 3, [4]int{420, 784, 1140, 1350}},
	{2185, 3, [4]int{450, 812, 1200, 1440}}, // 30
	{2323, 3, [4]int{480, 868, 1290, 1530}},
	{2465, 3, [4]int{510, 924, 1350, 1620}},
	{2611, 3, [4]int{540, 980, 1440, 1710}},
	{2761, 3, [4]int{570, 1036, 1530, 1800}},
	{2876, 0, [4]int{570, 1064, 1590, 1890}}, // 35
	{3034, 0, [4]int{600, 1120, 1680, 1980}},
	{3196, 0, [4]int{630, 1204, 1770, 2100}},
	{3362, 0, [4]int{660, 1260, 1860, 2220}},
	{3532, 0, [4]int{720, 1316, 1950, 2310}},
	{3706, 0, [4]int{750, 1372, 2040, 2430}}, // 40
	{5, 0, [4]int{2, 0, 0, 0}},               // M1 (level is always the implicit one)
	{10, 0, [4]int{5, 6, 0, 0}},              // M2: L, M
	{17, 0, [4]int{6, 8, 0, 0}},              // M3: L, M
	{24, 0, [4]int{8, 10, 14, 0}},            // M4: L, M, Q
}

// blockGroups[v][level] is the number of Reed-Solomon blocks for
// version v (index as in capacity) and error level.
var blockGroups = [45][4]int{
	{},
	{1, 1, 1, 1}, // 1
	{1, 1, 1, 1},
	{1, 1, 2, 2},
	{1, 2, 2, 4},
	{1, 2, 4, 4}, // 5
	{2, 4, 4, 4},
	{2, 4, 6, 5},
	{2, 4, 6, 6},
	{2, 5, 8, 8},
	{4, 5, 8, 8}, // 10
	{4, 5, 8, 11},
	{4, 8, 10, 11},
	{4, 9, 12, 16},
	{4, 9, 16, 16},
	{6, 10, 12, 18}, // 15
	{6, 10, 17, 16},
	{6, 11, 16, 19},
	{6, 13, 18, 21},
	{7, 14, 21, 25},
	{8, 16, 20, 25}, // 20
	{8, 17, 23, 25},
	{9, 17, 23, 34},
	{9, 18, 25, 30},
	{10, 20, 27, 32},
	{12, 21, 29, 35}, // 25
	{12, 23, 34, 37},
	{12, 25, 34, 40},
	{13, 26, 35, 42},
	{14, 28, 38, 45},
	{15, 29, 40, 48}, // 30
	{16, 31, 43, 51},
	{17, 33, 45, 54},
	{18, 35, 48, 57},
	{19, 37, 51, 60},
	{19, 38, 53, 63}, // 35
	{20, 40, 56, 66},
	{21, 43, 59, 70},
	{22, 45, 62, 74},
	{24, 47, 65, 77},
	{25, 49, 68, 81}, // 40
	{1, 0, 0, 0},     // M1
	{1, 1, 0, 0},     // M2
	{1, 1, 0, 0},     // M3
	{1, 1, 1, 0},     // M4
}

// align[v] gives two consecutive alignment-pattern center coordinates
// (p1, p2), p1 being the first coordinate after the mandatory p0 = 6,
// used to reconstruct the full coordinate list by extending the p1-p2
// stride to the edge of the symbol. p2 is 0 when v has only the two
// coordinates 6 and p1. Both are zero for versions with no alignment
// patterns (1, and all Micro versions).
var align = [45][2]int{
	{}, {}, // 0, 1
	{18, 0}, {22, 0}, {26, 0}, {30, 0}, // 2- 5
	{34, 0}, {22, 38}, {24, 42}, {26, 46}, {28, 50}, // 6-10
	{30, 54}, {32, 58}, {34, 62}, {26, 46}, {26, 48}, // 11-15
	{26, 50}, {30, 54}, {30, 56}, {30, 58}, {34, 62}, // 16-20
	{28, 50}, {26, 50}, {30, 54}, {28, 54}, {32, 58}, // 21-25
	{30, 58}, {34, 62}, {26, 50}, {30, 54}, {26, 52}, // 26-30
	{30, 56}, {34, 60}, {30, 58}, {34, 62}, {30, 54}, // 31-35
	{24, 50}, {28, 54}, {32, 58}, {26, 54}, {30, 58}, // 36-40
}

// AlignmentCenters returns the coordinates at which alignment pattern
// centers are placed for regular version v, omitting the three
// combinations that would overlap a finder pattern. It returns nil
// for version 1 and for Micro versions, which have no alignment
// patterns.
func AlignmentCenters(v Version) [][2]int {
	if v < 2 || v.IsMicro() {
		return nil
	}
	p1, p2 := align[v][0], align[v][1]
	if p1 == 0 {
		return nil
	}
	pos := []int{6, p1}
	if p2 != 0 {
		for x := p2; x <= v.Size()-7; x += p2 - p1 {
			pos = append(pos, x)
		}
	}
	n := len(pos)
	var centers [][2]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == 0 && j == 0 || i == 0 && j == n-1 || i == n-1 && j == 0 {
				continue
			}
			centers = append(centers, [2]int{pos[i], pos[j]})
		}
	}
	return centers
}

// blockLayout describes the Reed-Solomon block structure for a
// version and level: nblock blocks, of which normal have dataLen
// data codewords and the remaining nblock-normal have dataLen+1,
// every block carrying check codewords worth of error correction.
type blockLayout struct {
	nblock  int
	normal  int // number of blocks with the smaller data length
	dataLen int // smaller data length
	check   int // EC codewords per block, constant across all blocks
}

// layout returns the block layout for version v at level l.
func layout(v Version, l Level) blockLayout {
	idx := tableIndex(v)
	nblock := blockGroups[idx][l]
	check := capacity[idx].ec[l] / nblock
	total := capacity[idx].words - nblock*check
	dataLen := total / nblock
	normal := (dataLen+1)*nblock - total
	return blockLayout{nblock: nblock, normal: normal, dataLen: dataLen, check: check}
}

// tableIndex maps a Version to its capacity/blockGroups/align index:
// 1-40 map to themselves, M1-M4 map to 41-44.
func tableIndex(v Version) int {
	if v.IsMicro() {
		return 40 + int(v-M1) + 1
	}
	return int(v)
}

// dataBytes returns the number of data codewords available for
// version v at level l.
func (v Version) dataBytes(l Level) int {
	lay := layout(v, l)
	return lay.nblock*lay.dataLen + (lay.nblock - lay.normal)
}

// TotalBytes returns the total number of codewords (data + EC) in a
// symbol of version v.
func (v Version) TotalBytes() int {
	return capacity[tableIndex(v)].words
}

// Remainder returns the number of zero remainder bits appended after
// the interleaved codeword stream for version v.
func (v Version) Remainder() int {
	return capacity[tableIndex(v)].remainder
}

// DataBits returns the number of data bits that can be stored in a
// symbol of the given version and level. For M1 and M3, the last data
// codeword is a 4-bit nibble, so 4 bits less than a byte-aligned count
// are available.
func (v Version) DataBits(l Level) int {
	n := v.dataBytes(l) * 8
	if v.IsMicro() && n != 0 && int(v-M1)%2 == 0 {
		n -= 4
	}
	return n
}
