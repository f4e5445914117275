package terrain

import (
	"fmt"
	"sort"
)

// mixedSequence is the terrain rotation used by the mixed course
// generator. Variety over fairness: every archetype gets at least one
// segment it likes.
var mixedSequence = []Type{Grass, Mud, Water, Sand, Rock, Rough, Track, Grass}

// Mixed generates a course cycling through the standard terrain rotation
// in fixed-length segments. The last segment is truncated to the course
// length.
func Mixed(length, segmentLength float64) (*Course, error) {
	if segmentLength <= 0 {
		return nil, fmt.Errorf("terrain: segment length must be positive, got %g", segmentLength)
	}

	var segs []Segment
	pos := 0.0
	for i := 0; pos < length; i++ {
		end := pos + segmentLength
		if end > length {
			end = length
		}
		segs = append(segs, Segment{
			Start: pos,
			End:   end,
			Type:  mixedSequence[i%len(mixedSequence)],
		})
		pos = end
	}
	return NewCourse(length, segs)
}

// uniform builds a single-segment course of one terrain type.
func uniform(length float64, t Type) *Course {
	c, err := NewCourse(length, []Segment{{Start: 0, End: length, Type: t}})
	if err != nil {
		panic(fmt.Sprintf("terrain: builtin course: %v", err))
	}
	return c
}

func mustCourse(length float64, segs []Segment) *Course {
	c, err := NewCourse(length, segs)
	if err != nil {
		panic(fmt.Sprintf("terrain: builtin course: %v", err))
	}
	return c
}

// Builtin courses. Panicking on a malformed literal is deliberate: these
// are compile-time fixtures, and a bad one is a programming error.
var builtinCourses = map[string]func() *Course{
	"sprint": func() *Course { return uniform(800, Track) },
	"meadow": func() *Course {
		return mustCourse(1200, []Segment{
			{Start: 0, End: 400, Type: Grass},
			{Start: 400, End: 700, Type: Mud},
			{Start: 700, End: 1100, Type: Grass},
			{Start: 1100, End: 1200, Type: Finish},
		})
	},
	"tidal": func() *Course {
		return mustCourse(1500, []Segment{
			{Start: 0, End: 200, Type: Sand},
			{Start: 200, End: 700, Type: Water},
			{Start: 700, End: 900, Type: Sand},
			{Start: 900, End: 1400, Type: Water},
			{Start: 1400, End: 1500, Type: Finish},
		})
	},
	"quarry": func() *Course {
		return mustCourse(1400, []Segment{
			{Start: 0, End: 300, Type: Rough},
			{Start: 300, End: 800, Type: Rock},
			{Start: 800, End: 1000, Type: Sand},
			{Start: 1000, End: 1300, Type: Rock},
			{Start: 1300, End: 1400, Type: Finish},
		})
	},
	"gauntlet": func() *Course {
		c, err := Mixed(1600, 200)
		if err != nil {
			panic(fmt.Sprintf("terrain: builtin course: %v", err))
		}
		return c
	},
}

// BuiltinCourse returns a named builtin course.
func BuiltinCourse(name string) (*Course, error) {
	f, ok := builtinCourses[name]
	if !ok {
		return nil, fmt.Errorf("terrain: unknown course %q", name)
	}
	return f(), nil
}

// BuiltinCourseNames lists the builtin course names, sorted.
func BuiltinCourseNames() []string {
	names := make([]string, 0, len(builtinCourses))
	for name := range builtinCourses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
