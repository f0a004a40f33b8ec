package counts

import (
	"fmt"
	"math"
	"strings"
)

/*
Table holds the number of individuals of each label of a universe
in a population. Every label of the universe has a count, possibly 0.
Tables are immutable: operations on them return new tables.
*/
type Table struct {
	universe *Universe
	counts   []int
	total    int
}

/*
NewTable takes a universe and a map of labels to counts and returns a
Table. Labels of the universe missing from the map count 0. An
InvalidLabelError is returned if the map has a label outside the
universe and an InconsistencyError if it has a negative count.
*/
func NewTable(u *Universe, counts map[string]int) (*Table, error) {
	t := &Table{universe: u, counts: make([]int, u.Len())}
	for l, c := range counts {
		i, ok := u.Index(l)
		if !ok {
			return nil, &InvalidLabelError{l}
		}
		if c < 0 {
			return nil, &InconsistencyError{Label: l, Have: c, Want: 0}
		}
		t.counts[i] = c
		t.total += c
	}
	return t, nil
}

// Empty returns a table with all the labels of the universe at 0.
func Empty(u *Universe) *Table {
	return &Table{universe: u, counts: make([]int, u.Len())}
}

// Universe returns the label universe of the table.
func (t *Table) Universe() *Universe {
	return t.universe
}

// Total returns the sum of the counts of all labels.
func (t *Table) Total() int {
	return t.total
}

/*
Count returns the count for the given label, or 0 if the label
is not part of the table's universe.
*/
func (t *Table) Count(label string) int {
	i, ok := t.universe.Index(label)
	if !ok {
		return 0
	}
	return t.counts[i]
}

// Map returns the counts of the table indexed by label.
func (t *Table) Map() map[string]int {
	result := make(map[string]int, len(t.counts))
	for i, c := range t.counts {
		result[t.universe.Label(i)] = c
	}
	return result
}

/*
Probabilities returns the fraction of the total each label represents.
It returns an empty map for an empty table.
*/
func (t *Table) Probabilities() map[string]float64 {
	result := make(map[string]float64, len(t.counts))
	if t.total == 0 {
		return result
	}
	for i, c := range t.counts {
		result[t.universe.Label(i)] = float64(c) / float64(t.total)
	}
	return result
}

/*
Entropy returns the entropy in bits of the label distribution of the
table. Labels with no individuals do not contribute, and an empty
table has an entropy of 0.
*/
func (t *Table) Entropy() float64 {
	if t.total == 0 {
		return 0.0
	}
	var result float64
	total := float64(t.total)
	for _, c := range t.counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		result -= p * math.Log2(p)
	}
	return result
}

/*
MajorityLabel returns the label with the highest count. Ties are won by
the label that comes first in the universe. ErrEmptyTable is returned
when the table total is 0.
*/
func (t *Table) MajorityLabel() (string, error) {
	if t.total == 0 {
		return "", ErrEmptyTable
	}
	best := 0
	for i, c := range t.counts {
		if c > t.counts[best] {
			best = i
		}
	}
	return t.universe.Label(best), nil
}

// Pure returns whether at most one label has a nonzero count.
func (t *Table) Pure() bool {
	var nonzero int
	for _, c := range t.counts {
		if c != 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

/*
Subtract returns a new table with the count of each label being the
count on t minus the count on o. The universe of the result is the
union of both universes. An InconsistencyError is returned for the
first label whose result would be negative.
*/
func (t *Table) Subtract(o *Table) (*Table, error) {
	u := t.universe.Union(o.universe)
	result := Empty(u)
	for i := range result.counts {
		l := u.Label(i)
		have, want := t.Count(l), o.Count(l)
		if have < want {
			return nil, &InconsistencyError{Label: l, Have: have, Want: want}
		}
		result.counts[i] = have - want
		result.total += have - want
	}
	return result, nil
}

/*
Add returns a new table with the count of each label being the sum of
its counts on t and o, over the union of both universes.
*/
func (t *Table) Add(o *Table) *Table {
	u := t.universe.Union(o.universe)
	result := Empty(u)
	for i := range result.counts {
		l := u.Label(i)
		result.counts[i] = t.Count(l) + o.Count(l)
		result.total += result.counts[i]
	}
	return result
}

/*
Equal returns whether both tables have the same universe and the same
count for every label.
*/
func (t *Table) Equal(o *Table) bool {
	if !t.universe.Equal(o.universe) {
		return false
	}
	for i, c := range t.counts {
		if o.counts[i] != c {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	parts := make([]string, len(t.counts))
	for i, c := range t.counts {
		parts[i] = fmt.Sprintf("%s:%d", t.universe.Label(i), c)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, " "))
}
