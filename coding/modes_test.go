package coding

import "testing"

func TestIsKanji(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{'あ', true},  // Hiragana
		{'ア', true},  // Katakana
		{'漢', true},  // CJK
		{'A', false},
		{'0', false},
	}
	for _, c := range cases {
		if got := IsKanji(c.r); got != c.want {
			t.Errorf("IsKanji(%q) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestIs(t *testing.T) {
	if !Is('5', Numeric) {
		t.Error("Is('5', Numeric) = false, want true")
	}
	if Is('A', Numeric) {
		t.Error("Is('A', Numeric) = true, want false")
	}
	if !Is('A', Alphanumeric) {
		t.Error("Is('A', Alphanumeric) = false, want true")
	}
	if Is('a', Alphanumeric) {
		t.Error("Is('a', Alphanumeric) = true, want false")
	}
	if !Is('\x00', Byte) {
		t.Error("Is('\\x00', Byte) = false, want true")
	}
}

func TestModeMinClass(t *testing.T) {
	cases := []struct {
		mode Mode
		min  int
	}{
		{Numeric, ClassM1},
		{Alphanumeric, ClassM2},
		{Byte, ClassM3},
		{Kanji, ClassM3},
	}
	for _, c := range cases {
		if got := c.mode.MinClass(); got != c.min {
			t.Errorf("%s.MinClass() = %d, want %d", c.mode, got, c.min)
		}
	}
}

func TestModeLength(t *testing.T) {
	if got := Mode(30000).Length(1, 1, Class0); got != 0 {
		t.Errorf("unregistered mode Length = %d, want 0", got)
	}
}

func TestAddModeAndGetMode(t *testing.T) {
	orig := GetMode(Numeric)
	mode := AddMode(orig)
	if mode < 0 {
		t.Fatal("AddMode returned -1")
	}
	got := GetMode(mode)
	if got == nil || got.Name != orig.Name {
		t.Errorf("GetMode(%d) = %v, want a copy of %v", mode, got, orig)
	}
}

func TestKanjiTransform(t *testing.T) {
	seg := Segment{"あ", Kanji}
	ts, err := seg.Transform()
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(ts.Text) != 2 {
		t.Errorf("transformed Kanji segment has %d bytes, want 2", len(ts.Text))
	}
}

func TestLatin1Transform(t *testing.T) {
	seg := Segment{"café", Latin1}
	ts, err := seg.Transform()
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if ts.Mode != Byte {
		t.Errorf("transformed Latin1 segment has mode %s, want Byte", ts.Mode)
	}
	if len(ts.Text) != 4 {
		t.Errorf("transformed Latin1 segment has %d bytes, want 4", len(ts.Text))
	}
}

func TestLatin1TransformRejectsNonLatin1(t *testing.T) {
	b := NewBits(1, L)
	err := Segment{"日本語", Latin1}.Encode(b, Class0)
	if _, ok := err.(SegmentError); !ok {
		t.Errorf("Encode of non-Latin1 text returned %v (%T), want SegmentError", err, err)
	}
}
