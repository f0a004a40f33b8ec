package feature

import "strings"

/*
Path is the sequence of criteria that leads from the root of a tree to
one of its nodes. It identifies the subpopulation that satisfies all of
them. Paths are immutable: Extend returns a new path.
*/
type Path struct {
	criteria []Criterion
}

// NewPath returns a path with the given criteria.
func NewPath(criteria ...Criterion) Path {
	return Path{append([]Criterion(nil), criteria...)}
}

// Len returns the number of criteria on the path.
func (p Path) Len() int {
	return len(p.criteria)
}

// Criteria returns a copy of the criteria on the path.
func (p Path) Criteria() []Criterion {
	return append([]Criterion(nil), p.criteria...)
}

// At returns the criterion at position i.
func (p Path) At(i int) Criterion {
	return p.criteria[i]
}

/*
Last returns the last criterion of the path and true, or the zero
Criterion and false for the empty path of a root.
*/
func (p Path) Last() (Criterion, bool) {
	if len(p.criteria) == 0 {
		return Criterion{}, false
	}
	return p.criteria[len(p.criteria)-1], true
}

/*
Extend returns a new path with the criteria on p followed by the
criterion for the given feature and direction.
*/
func (p Path) Extend(f Feature, d Direction) Path {
	criteria := make([]Criterion, len(p.criteria), len(p.criteria)+1)
	copy(criteria, p.criteria)
	return Path{append(criteria, Criterion{f, d})}
}

// Prefix returns the path with the first n criteria of p.
func (p Path) Prefix(n int) Path {
	return Path{p.criteria[:n:n]}
}

// Uses returns whether the feature is constrained by any criterion on the path.
func (p Path) Uses(f Feature) bool {
	for _, c := range p.criteria {
		if c.Feature == f {
			return true
		}
	}
	return false
}

// SatisfiedBy returns whether the sample satisfies every criterion on the path.
func (p Path) SatisfiedBy(s Sample) bool {
	for _, c := range p.criteria {
		if !c.SatisfiedBy(s) {
			return false
		}
	}
	return true
}

// Equal returns whether both paths have the same criteria in the same order.
func (p Path) Equal(o Path) bool {
	if len(p.criteria) != len(o.criteria) {
		return false
	}
	for i, c := range p.criteria {
		if o.criteria[i] != c {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	if len(p.criteria) == 0 {
		return "root"
	}
	parts := make([]string, len(p.criteria))
	for i, c := range p.criteria {
		parts[i] = c.String()
	}
	return strings.Join(parts, " > ")
}
