package terrain

import (
	"fmt"
	"sort"
)

// Segment is a half-open distance interval [Start, End) of one terrain
// type. SpeedModifier and EnergyDrain, when non-zero, override the type's
// base properties for this segment only.
type Segment struct {
	Start         float64 `yaml:"start" json:"start"`
	End           float64 `yaml:"end" json:"end"`
	Type          Type    `yaml:"type" json:"type"`
	SpeedModifier float64 `yaml:"speed_modifier,omitempty" json:"speed_modifier,omitempty"`
	EnergyDrain   float64 `yaml:"energy_drain,omitempty" json:"energy_drain,omitempty"`
}

// Contains reports whether a track position falls inside the segment.
func (s Segment) Contains(pos float64) bool {
	return s.Start <= pos && pos < s.End
}

// EffectiveSpeedModifier returns the segment override if set, else the
// type's base modifier.
func (s Segment) EffectiveSpeedModifier() float64 {
	if s.SpeedModifier > 0 {
		return s.SpeedModifier
	}
	return BaseProperties(s.Type).SpeedModifier
}

// EffectiveEnergyDrain returns the segment override if set, else the
// type's base drain.
func (s Segment) EffectiveEnergyDrain() float64 {
	if s.EnergyDrain > 0 {
		return s.EnergyDrain
	}
	return BaseProperties(s.Type).EnergyDrain
}

// Course is a validated, ordered segment list covering [0, Length())
// with no gaps and no overlaps. Courses are immutable after construction;
// segment lookup is a pure function of position.
type Course struct {
	segments []Segment
	length   float64
}

// NewCourse validates the segment list and builds a course. Segments must
// be sorted by start, begin at 0, be strictly contiguous, and end exactly
// at length. Any violation is a fatal configuration error: the race never
// starts on a malformed track.
func NewCourse(length float64, segments []Segment) (*Course, error) {
	if length <= 0 {
		return nil, fmt.Errorf("terrain: course length must be positive, got %g", length)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("terrain: course has no segments")
	}

	segs := make([]Segment, len(segments))
	copy(segs, segments)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })

	if segs[0].Start != 0 {
		return nil, fmt.Errorf("terrain: first segment starts at %g, want 0", segs[0].Start)
	}
	for i, s := range segs {
		if s.End <= s.Start {
			return nil, fmt.Errorf("terrain: segment %d [%g, %g) is empty or inverted", i, s.Start, s.End)
		}
		if s.Type >= typeCount {
			return nil, fmt.Errorf("terrain: segment %d has unknown terrain type %d", i, s.Type)
		}
		if i > 0 {
			prev := segs[i-1]
			if s.Start < prev.End {
				return nil, fmt.Errorf("terrain: segments %d and %d overlap at %g", i-1, i, s.Start)
			}
			if s.Start > prev.End {
				return nil, fmt.Errorf("terrain: gap between segments %d and %d at [%g, %g)", i-1, i, prev.End, s.Start)
			}
		}
	}
	if last := segs[len(segs)-1]; last.End != length {
		return nil, fmt.Errorf("terrain: segments end at %g, want course length %g", last.End, length)
	}

	return &Course{segments: segs, length: length}, nil
}

// Length returns the total course length.
func (c *Course) Length() float64 { return c.length }

// Segments returns a copy of the segment list.
func (c *Course) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// At returns the segment covering the given position. Positions before the
// start clamp to the first segment; positions at or past the end clamp to
// the last. Binary search over the sorted segment list.
func (c *Course) At(pos float64) Segment {
	if pos < 0 {
		return c.segments[0]
	}
	if pos >= c.length {
		return c.segments[len(c.segments)-1]
	}
	i := sort.Search(len(c.segments), func(i int) bool {
		return c.segments[i].End > pos
	})
	return c.segments[i]
}

// Window returns up to n segments starting with the one covering pos,
// looking forward along the track. Used for the snapshot's terrain-ahead
// view.
func (c *Course) Window(pos float64, n int) []Segment {
	if n <= 0 || pos >= c.length {
		return nil
	}
	if pos < 0 {
		pos = 0
	}
	start := sort.Search(len(c.segments), func(i int) bool {
		return c.segments[i].End > pos
	})
	end := start + n
	if end > len(c.segments) {
		end = len(c.segments)
	}
	out := make([]Segment, end-start)
	copy(out, c.segments[start:end])
	return out
}
