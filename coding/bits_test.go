package coding

import (
	"bytes"
	"testing"

	"github.com/qrgo/qr/gf256"
)

func TestBitsWrite(t *testing.T) {
	b := NewBits(1, L)
	b.Write(0b1010, 4)
	b.Write(0b11, 2)
	b.Write(0b000001, 6)
	b.Write(0, 4) // pad to a byte boundary; Bytes panics on a partial byte
	got := b.Bytes()
	want := []byte{0b10101100, 0b00010000}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %08b, want %08b", got, want)
	}
}

func TestBitsAdd(t *testing.T) {
	b := NewBits(1, L)
	b.Write(0xff, 8)
	buf := b.Add(2)
	buf[0], buf[1] = 1, 2
	if got, want := b.Bytes(), []byte{0xff, 1, 2}; !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}
}

func TestPadTo(t *testing.T) {
	b := NewBits(1, L)
	b.Write(0x20, 8)
	b.growTo(2)
	b.padTo(4, 16)
	if got, want := b.Bytes(), []byte{0x20, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}
}

// TestAddCheckBytesHelloWorld builds the classic "HELLO WORLD"
// alphanumeric example (version 1, level M, 16 data codewords, 10
// Reed-Solomon check codewords) through the real segment-encoding
// path and checks the structural properties AddCheckBytes promises:
// the right total length, the 0xEC/0x11 pad pattern from the first
// byte boundary after the content to the end of the data codewords,
// and check codewords that are valid Reed-Solomon parity for that
// data.
func TestAddCheckBytesHelloWorld(t *testing.T) {
	b := NewBits(1, M)
	if err := (Segment{"HELLO WORLD", Alphanumeric}).Encode(b, Class0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	contentBits := b.Len()
	b.AddCheckBytes(1, M)
	got := b.Bytes()
	if len(got) != 26 {
		t.Fatalf("len(Bytes()) = %d, want 26", len(got))
	}
	data, check := got[:16], got[16:]

	// Every full byte from the first byte boundary after the content
	// to the end of the data codewords must follow the 0xEC, 0x11
	// alternation. The terminator bits before that boundary are not
	// checked here.
	padStart := (contentBits + 7) / 8
	for i := padStart; i < 16; i++ {
		want := byte(0xec)
		if (i-padStart)%2 == 1 {
			want = 0x11
		}
		if data[i] != want {
			t.Errorf("pad byte %d = %#x, want %#x", i, data[i], want)
		}
	}

	rs := gf256.NewRSEncoder(Field, len(check))
	wantCheck := make([]byte, len(check))
	rs.ECC(data, wantCheck)
	if !bytes.Equal(check, wantCheck) {
		t.Errorf("check codewords = %#x, want %#x", check, wantCheck)
	}
}

func TestInterleave(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}
	dst := make([]byte, len(src))
	// 2 blocks: block 0 has 2 bytes (1,2), block 1 has 3 bytes (3,4,5).
	interleave(dst, src, 2)
	want := []byte{1, 3, 2, 4, 5}
	if !bytes.Equal(dst, want) {
		t.Errorf("interleave = %v, want %v", dst, want)
	}
}

func TestBitStreamNext(t *testing.T) {
	s := NewBitStream([]byte{0b10110000})
	var got []byte
	for i := 0; i < 8; i++ {
		got = append(got, s.Next())
	}
	want := []byte{1, 0, 1, 1, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Next sequence = %v, want %v", got, want)
	}
	// Past the end, Next keeps returning 0.
	if s.Next() != 0 {
		t.Error("Next() past end of buffer != 0")
	}
}
