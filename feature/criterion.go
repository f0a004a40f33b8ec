package feature

import "fmt"

/*
Direction indicates which side of a split on a feature a population
belongs to: the individuals with the feature or those without it.
*/
type Direction int

const (
	// With is the direction of individuals carrying the feature
	With Direction = iota + 1
	// Without is the direction of individuals lacking the feature
	Without
)

func (d Direction) String() string {
	switch d {
	case With:
		return "with"
	case Without:
		return "w/o"
	}
	return "none"
}

// ParseDirection takes the string form of a Direction and returns it.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "with":
		return With, nil
	case "w/o", "without":
		return Without, nil
	}
	return 0, fmt.Errorf("unknown split direction %q", s)
}

/*
Criterion represents a constraint on a feature: its presence or its
absence.
*/
type Criterion struct {
	Feature   Feature
	Direction Direction
}

/*
SatisfiedBy receives a sample and returns whether it meets the
criterion: a With criterion requires the feature to be present on
the sample, a Without criterion requires it to be absent.
*/
func (c Criterion) SatisfiedBy(s Sample) bool {
	return s.Has(c.Feature) == (c.Direction == With)
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s:%s", c.Direction, c.Feature)
}
