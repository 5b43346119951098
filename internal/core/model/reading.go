package model

// ReadingLevel is a coarse three-level estimate of text complexity.
type ReadingLevel int

const (
	ReadingLow ReadingLevel = iota + 1
	ReadingMedium
	ReadingHigh
)

func (l ReadingLevel) String() string {
	switch l {
	case ReadingLow:
		return "low"
	case ReadingHigh:
		return "high"
	default:
		return "medium"
	}
}

// ParseReadingLevel maps the wire strings back to levels. Unknown values
// fall back to medium, matching how scoring treats an absent level.
func ParseReadingLevel(s string) ReadingLevel {
	switch s {
	case "low":
		return ReadingLow
	case "high":
		return ReadingHigh
	default:
		return ReadingMedium
	}
}
