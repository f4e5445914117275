package tui

import "testing"

func TestTicksPerFrame(t *testing.T) {
	cases := []struct {
		tickRate int
		want     int
	}{
		{1, 1},
		{30, 1},
		{60, 1},
		{61, 2},
		{120, 2},
		{150, 3},
	}
	for _, c := range cases {
		if got := ticksPerFrame(c.tickRate); got != c.want {
			t.Errorf("ticksPerFrame(%d) = %d, want %d", c.tickRate, got, c.want)
		}
	}
}
