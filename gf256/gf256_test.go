package gf256

import "testing"

var field = NewField(0x11d, 2)

func TestExpLogInverse(t *testing.T) {
	for x := 1; x < 256; x++ {
		e := field.Log(byte(x))
		if got := field.Exp(e); got != byte(x) {
			t.Errorf("Exp(Log(%d)) = %d, want %d", x, got, x)
		}
	}
}

func TestMulInv(t *testing.T) {
	for x := 1; x < 256; x++ {
		inv := field.Inv(byte(x))
		if got := field.Mul(byte(x), inv); got != 1 {
			t.Errorf("%d * Inv(%d) = %d, want 1", x, x, got)
		}
	}
}

func TestMulZero(t *testing.T) {
	for x := 0; x < 256; x++ {
		if field.Mul(0, byte(x)) != 0 || field.Mul(byte(x), 0) != 0 {
			t.Errorf("Mul(0, %d) != 0", x)
		}
	}
}

// TestRSEncoderVersion1M checks the Reed-Solomon check bytes for the
// textbook QR code version 1-M "HELLO WORLD" example, whose 16 data
// codewords and 10 check codewords are well known.
func TestRSEncoderVersion1M(t *testing.T) {
	data := []byte{
		0x20, 0x5b, 0x0b, 0x78, 0xd1, 0x72, 0xdc, 0x4d,
		0x43, 0x40, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
	}
	want := []byte{
		0xc4, 0x23, 0x27, 0x77, 0xeb, 0xf9, 0xdb, 0x5c, 0x43, 0x37,
	}
	rs := NewRSEncoder(field, len(want))
	got := make([]byte, len(want))
	rs.ECC(data, got)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ECC = %#x, want %#x", got, want)
		}
	}
}
