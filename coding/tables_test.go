package coding

import "testing"

// TestDataBitsMonotonic checks the property BoostLevel relies on: data
// capacity for a fixed version never increases as the error level
// rises.
func TestDataBitsMonotonic(t *testing.T) {
	for v := Version(1); v <= 40; v++ {
		prev := v.DataBits(L)
		for l := M; l <= H; l++ {
			cur := v.DataBits(l)
			if cur > prev {
				t.Errorf("version %s: DataBits(%s) = %d > DataBits(%s) = %d", v, l, cur, l-1, prev)
			}
			prev = cur
		}
	}
}

func TestDataBytesAsymmetricSplit(t *testing.T) {
	// Version 1-L is a single block with no larger/smaller split at
	// all: normal (the count of dataLen-sized blocks) equals nblock,
	// so dataBytes must fall back to exactly dataLen, not dataLen plus
	// an extra block's worth.
	if got, want := Version(1).dataBytes(L), 19; got != want {
		t.Errorf("Version(1).dataBytes(L) = %d, want %d", got, want)
	}
	// Version 40-L splits into 19 blocks of 118 bytes and 6 of 119:
	// 19*118 + 6*119 = 2956.
	if got, want := Version(40).dataBytes(L), 2956; got != want {
		t.Errorf("Version(40).dataBytes(L) = %d, want %d", got, want)
	}
}

func TestVersion1DataBits(t *testing.T) {
	// Version 1-L has 19 data codewords per ISO/IEC 18004 Annex I.
	if got, want := Version(1).DataBits(L), 19*8; got != want {
		t.Errorf("Version(1).DataBits(L) = %d, want %d", got, want)
	}
}

func TestMicroDataBits(t *testing.T) {
	// M1 has 5 codewords total, 2 of them EC, the last data codeword a
	// nibble: (5-2)*8-4 = 20 bits.
	if got, want := M1.DataBits(L), 20; got != want {
		t.Errorf("M1.DataBits(L) = %d, want %d", got, want)
	}
}

func TestAlignmentCentersVersion1(t *testing.T) {
	if got := AlignmentCenters(1); got != nil {
		t.Errorf("AlignmentCenters(1) = %v, want nil", got)
	}
}

func TestAlignmentCentersMicro(t *testing.T) {
	if got := AlignmentCenters(M2); got != nil {
		t.Errorf("AlignmentCenters(M2) = %v, want nil", got)
	}
}

func TestAlignmentCentersVersion7(t *testing.T) {
	// Version 7 has alignment coordinates 6, 22 and 38: six patterns,
	// the three combinations overlapping a finder being omitted.
	got := AlignmentCenters(7)
	want := [][2]int{{6, 22}, {22, 6}, {22, 22}, {22, 38}, {38, 22}, {38, 38}}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("AlignmentCenters(7) = %v, want %v", got, want)
	}
}

func TestTotalBytesMatchesLayout(t *testing.T) {
	for v := Version(1); v <= 40; v++ {
		for l := L; l <= H; l++ {
			lay := layout(v, l)
			got := lay.nblock*lay.dataLen + (lay.nblock - lay.normal) + lay.nblock*lay.check
			if got != v.TotalBytes() {
				t.Errorf("version %s level %s: layout codewords = %d, want %d", v, l, got, v.TotalBytes())
			}
		}
	}
}
