package rain

import "math"

const (
	MinLength = 5
	MaxLength = 15 // exclusive

	MinSpeed = 0.3
	MaxSpeed = 1.3 // exclusive
)

// Stream is one falling glyph trail. Only Row changes after creation.
type Stream struct {
	ID     int
	Row    float64
	Col    int
	Length int
	Speed  float64
}

// Head returns the integer row of the leading glyph.
func (s Stream) Head() int {
	return int(math.Floor(s.Row))
}

// Gone reports whether the whole trail has scrolled past the bottom of a
// screen with the given number of rows.
func (s Stream) Gone(rows int) bool {
	head := s.Head()
	return head >= s.Length && head-s.Length >= rows
}
