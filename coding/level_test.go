package coding

import "testing"

func TestLevelString(t *testing.T) {
	cases := []struct {
		l    Level
		want string
	}{
		{L, "L"}, {M, "M"}, {Q, "Q"}, {H, "H"},
	}
	for _, c := range cases {
		if got := c.l.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", c.l, got, c.want)
		}
	}
}

func TestLevelValid(t *testing.T) {
	cases := []struct {
		l    Level
		v    Version
		want bool
	}{
		{L, 1, true}, {H, 1, true},
		{L, M1, false}, {H, M1, false},
		{L, M2, true}, {M, M2, true}, {Q, M2, false}, {H, M2, false},
		{L, M3, true}, {M, M3, true}, {Q, M3, false},
		{L, M4, true}, {M, M4, true}, {Q, M4, true}, {H, M4, false},
	}
	for _, c := range cases {
		if got := c.l.Valid(c.v); got != c.want {
			t.Errorf("%s.Valid(%s) = %v, want %v", c.l, c.v, got, c.want)
		}
	}
}
