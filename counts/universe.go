package counts

import (
	"fmt"
	"sort"
	"strings"
)

/*
Universe is the ordered set of labels a population can be classified
into. The order of a universe is fixed at construction and is the
enumeration order used to break ties between labels.
*/
type Universe struct {
	labels []string
	index  map[string]int
}

/*
NewUniverse takes a list of labels and returns a Universe with them in
the given order, or an error if a label is empty or repeated.
*/
func NewUniverse(labels ...string) (*Universe, error) {
	u := &Universe{
		labels: make([]string, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for _, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("empty label in universe")
		}
		if _, ok := u.index[l]; ok {
			return nil, fmt.Errorf("label %q appears more than once in universe", l)
		}
		u.index[l] = len(u.labels)
		u.labels = append(u.labels, l)
	}
	return u, nil
}

/*
SortedUniverse takes a list of labels that may contain repetitions and
returns a Universe with the distinct labels sorted alphabetically.
*/
func SortedUniverse(labels ...string) (*Universe, error) {
	seen := make(map[string]bool, len(labels))
	distinct := make([]string, 0, len(labels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			distinct = append(distinct, l)
		}
	}
	sort.Strings(distinct)
	return NewUniverse(distinct...)
}

// Len returns the number of labels in the universe.
func (u *Universe) Len() int {
	return len(u.labels)
}

// Labels returns a copy of the labels of the universe in order.
func (u *Universe) Labels() []string {
	return append([]string(nil), u.labels...)
}

// Label returns the label at position i.
func (u *Universe) Label(i int) string {
	return u.labels[i]
}

/*
Index returns the position of the given label in the universe and
whether the label belongs to it.
*/
func (u *Universe) Index(label string) (int, bool) {
	i, ok := u.index[label]
	return i, ok
}

// Contains returns whether the label belongs to the universe.
func (u *Universe) Contains(label string) bool {
	_, ok := u.index[label]
	return ok
}

/*
Equal returns whether both universes hold the same labels in
the same order.
*/
func (u *Universe) Equal(o *Universe) bool {
	if u == o {
		return true
	}
	if u == nil || o == nil || len(u.labels) != len(o.labels) {
		return false
	}
	for i, l := range u.labels {
		if o.labels[i] != l {
			return false
		}
	}
	return true
}

/*
Union returns a universe with the labels of u followed by the labels
of o that are not in u. If o adds nothing, u itself is returned.
*/
func (u *Universe) Union(o *Universe) *Universe {
	if u.Equal(o) {
		return u
	}
	var extra []string
	for _, l := range o.labels {
		if !u.Contains(l) {
			extra = append(extra, l)
		}
	}
	if len(extra) == 0 {
		return u
	}
	result := &Universe{
		labels: append(u.Labels(), extra...),
		index:  make(map[string]int, len(u.labels)+len(extra)),
	}
	for i, l := range result.labels {
		result.index[l] = i
	}
	return result
}

func (u *Universe) String() string {
	return fmt.Sprintf("{%s}", strings.Join(u.labels, ","))
}
