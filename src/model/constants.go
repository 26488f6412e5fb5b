package model

type Direction int

const (
	EAST Direction = iota
	WEST
)

func (d Direction) String() string {
	if d == EAST {
		return "East"
	}
	return "West"
}

func (d Direction) Opposite() Direction {
	if d == EAST {
		return WEST
	}
	return EAST
}

type Priority int

const (
	HIGH_PRIORITY Priority = iota
	LOW_PRIORITY
)

func (p Priority) String() string {
	if p == HIGH_PRIORITY {
		return "high"
	}
	return "low"
}

// Loading and crossing durations are given in abstract time units.
const (
	MIN_DURATION = 1
	MAX_DURATION = 99
)
