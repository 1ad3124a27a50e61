package valueobjects

// Outline level bounds
const (
	MinLevel = 1
	MaxLevel = 8
)

// Level is an outline depth in [MinLevel, MaxLevel]
type Level int

// NewLevel clamps n into [MinLevel, MaxLevel]. Out-of-range input is never an
// error.
func NewLevel(n int) Level {
	switch {
	case n < MinLevel:
		return MinLevel
	case n > MaxLevel:
		return MaxLevel
	default:
		return Level(n)
	}
}

// Int returns the integer value
func (l Level) Int() int {
	return int(l)
}

// IsTop reports whether l is a main paragraph level
func (l Level) IsTop() bool {
	return l == MinLevel
}

// Deeper returns l+1, clamped to limit and MaxLevel
func (l Level) Deeper(limit int) Level {
	next := NewLevel(int(l) + 1)
	if limit >= MinLevel && int(next) > limit {
		return NewLevel(limit)
	}
	return next
}

// Shallower returns l-1, clamped to MinLevel
func (l Level) Shallower() Level {
	return NewLevel(int(l) - 1)
}

// Emphasized reports whether glyphs at this level are underlined (levels 5-8)
func (l Level) Emphasized() bool {
	return l > 4
}

// Pattern returns the position within the repeating four-level cycle (1-4)
func (l Level) Pattern() int {
	return (int(l)-1)%4 + 1
}
