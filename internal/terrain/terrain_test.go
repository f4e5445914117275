package terrain

import (
	"testing"
)

func TestParseTypeRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		parsed, err := ParseType(typ.String())
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", typ.String(), err)
			continue
		}
		if parsed != typ {
			t.Errorf("Round trip mismatch: %v -> %q -> %v", typ, typ.String(), parsed)
		}
	}

	if _, err := ParseType("lava"); err == nil {
		t.Error("ParseType should reject unknown names")
	}
}

func TestBasePropertiesCoverAllTypes(t *testing.T) {
	for _, typ := range Types() {
		p := BaseProperties(typ)
		if p.SpeedModifier <= 0 {
			t.Errorf("%s has non-positive speed modifier %g", typ, p.SpeedModifier)
		}
		if p.EnergyDrain <= 0 {
			t.Errorf("%s has non-positive energy drain %g", typ, p.EnergyDrain)
		}
	}

	// Unknown types fall back to identity instead of failing.
	p := BaseProperties(Type(200))
	if p.SpeedModifier != 1.0 || p.EnergyDrain != 1.0 {
		t.Errorf("Unknown type should get identity properties, got %+v", p)
	}
}

func TestNewCourseValidation(t *testing.T) {
	cases := []struct {
		name     string
		length   float64
		segments []Segment
	}{
		{"empty", 100, nil},
		{"zero length", 0, []Segment{{Start: 0, End: 100, Type: Grass}}},
		{"does not start at zero", 100, []Segment{{Start: 10, End: 100, Type: Grass}}},
		{"gap", 100, []Segment{
			{Start: 0, End: 40, Type: Grass},
			{Start: 50, End: 100, Type: Mud},
		}},
		{"overlap", 100, []Segment{
			{Start: 0, End: 60, Type: Grass},
			{Start: 50, End: 100, Type: Mud},
		}},
		{"short of length", 100, []Segment{{Start: 0, End: 90, Type: Grass}}},
		{"past length", 100, []Segment{{Start: 0, End: 110, Type: Grass}}},
		{"inverted segment", 100, []Segment{
			{Start: 0, End: 50, Type: Grass},
			{Start: 50, End: 50, Type: Mud},
			{Start: 50, End: 100, Type: Grass},
		}},
		{"unknown type", 100, []Segment{{Start: 0, End: 100, Type: Type(99)}}},
	}

	for _, tc := range cases {
		if _, err := NewCourse(tc.length, tc.segments); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestNewCourseSortsSegments(t *testing.T) {
	c, err := NewCourse(300, []Segment{
		{Start: 200, End: 300, Type: Water},
		{Start: 0, End: 100, Type: Grass},
		{Start: 100, End: 200, Type: Mud},
	})
	if err != nil {
		t.Fatalf("Unsorted but valid segments should be accepted: %v", err)
	}
	segs := c.Segments()
	if segs[0].Type != Grass || segs[1].Type != Mud || segs[2].Type != Water {
		t.Errorf("Segments should be stored sorted by start: %+v", segs)
	}
}

func TestCourseAt(t *testing.T) {
	c, err := NewCourse(300, []Segment{
		{Start: 0, End: 100, Type: Grass},
		{Start: 100, End: 200, Type: Mud},
		{Start: 200, End: 300, Type: Water},
	})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		pos  float64
		want Type
	}{
		{-5, Grass},   // clamps to first
		{0, Grass},    // interval start is inclusive
		{99.9, Grass}, // interval end is exclusive
		{100, Mud},
		{250, Water},
		{300, Water}, // clamps to last
		{999, Water},
	}
	for _, tc := range cases {
		if got := c.At(tc.pos).Type; got != tc.want {
			t.Errorf("At(%g) = %s, want %s", tc.pos, got, tc.want)
		}
	}
}

func TestCourseWindow(t *testing.T) {
	c, err := NewCourse(400, []Segment{
		{Start: 0, End: 100, Type: Grass},
		{Start: 100, End: 200, Type: Mud},
		{Start: 200, End: 300, Type: Water},
		{Start: 300, End: 400, Type: Finish},
	})
	if err != nil {
		t.Fatal(err)
	}

	w := c.Window(150, 2)
	if len(w) != 2 || w[0].Type != Mud || w[1].Type != Water {
		t.Errorf("Window(150, 2) = %+v, want [mud water]", w)
	}

	// Window truncates at the course end instead of wrapping.
	w = c.Window(350, 5)
	if len(w) != 1 || w[0].Type != Finish {
		t.Errorf("Window(350, 5) = %+v, want [finish]", w)
	}

	if w = c.Window(400, 3); w != nil {
		t.Errorf("Window past the end should be nil, got %+v", w)
	}
	if w = c.Window(0, 0); w != nil {
		t.Errorf("Window with n=0 should be nil, got %+v", w)
	}
}

func TestSegmentOverrides(t *testing.T) {
	s := Segment{Start: 0, End: 100, Type: Mud}
	if s.EffectiveSpeedModifier() != 0.6 {
		t.Errorf("Mud base speed should be 0.6, got %g", s.EffectiveSpeedModifier())
	}

	s.SpeedModifier = 0.9
	s.EnergyDrain = 2.0
	if s.EffectiveSpeedModifier() != 0.9 {
		t.Errorf("Override speed should win, got %g", s.EffectiveSpeedModifier())
	}
	if s.EffectiveEnergyDrain() != 2.0 {
		t.Errorf("Override drain should win, got %g", s.EffectiveEnergyDrain())
	}
}

func TestBuiltinCourses(t *testing.T) {
	names := BuiltinCourseNames()
	if len(names) == 0 {
		t.Fatal("Expected at least one builtin course")
	}
	for _, name := range names {
		c, err := BuiltinCourse(name)
		if err != nil {
			t.Errorf("Builtin course %q failed to load: %v", name, err)
			continue
		}
		if c.Length() <= 0 {
			t.Errorf("Builtin course %q has non-positive length", name)
		}
	}

	if _, err := BuiltinCourse("no-such-track"); err == nil {
		t.Error("Unknown builtin name should error")
	}
}

func TestMixedCourseContiguous(t *testing.T) {
	c, err := Mixed(1600, 200)
	if err != nil {
		t.Fatalf("Mixed course generation failed: %v", err)
	}
	segs := c.Segments()
	if segs[0].Start != 0 {
		t.Errorf("Mixed course should start at 0, got %g", segs[0].Start)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Start != segs[i-1].End {
			t.Errorf("Gap between mixed segments %d and %d", i-1, i)
		}
	}
	if last := segs[len(segs)-1]; last.End != 1600 {
		t.Errorf("Mixed course should end at 1600, got %g", last.End)
	}
}
