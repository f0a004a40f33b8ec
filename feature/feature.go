/*
Package feature defines the binary features trees are grown on:
genetic variants that an individual either carries or not, the
criteria that constrain them and the paths of criteria that lead
from the root of a tree to one of its nodes.
*/
package feature

import (
	"fmt"
	"sort"
	"strings"
)

/*
Feature identifies a variant that may be present on an individual.
*/
type Feature string

// Name returns a string with the name of the feature
func (f Feature) Name() string {
	return string(f)
}

/*
Sample is something whose features can be checked for presence,
typically the set of variants an individual carries.
*/
type Sample interface {
	Has(Feature) bool
}

/*
Set is a Sample backed by a set of present features.
*/
type Set map[Feature]struct{}

// NewSet returns a Set with the given features present.
func NewSet(features ...Feature) Set {
	s := make(Set, len(features))
	for _, f := range features {
		s[f] = struct{}{}
	}
	return s
}

// Has returns whether the feature is present on the set.
func (s Set) Has(f Feature) bool {
	_, ok := s[f]
	return ok
}

// Add marks the feature as present on the set.
func (s Set) Add(f Feature) {
	s[f] = struct{}{}
}

// Sorted returns the features present on the set sorted by name.
func (s Set) Sorted() []Feature {
	result := make([]Feature, 0, len(s))
	for f := range s {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (s Set) String() string {
	names := make([]string, 0, len(s))
	for _, f := range s.Sorted() {
		names = append(names, f.Name())
	}
	return fmt.Sprintf("[%s]", strings.Join(names, " "))
}

/*
Distinct takes a slice of features and returns an error if any
feature is empty or appears more than once. An empty slice is
distinct.
*/
func Distinct(features []Feature) error {
	seen := make(map[Feature]bool, len(features))
	for _, f := range features {
		if f == "" {
			return fmt.Errorf("empty feature name")
		}
		if seen[f] {
			return fmt.Errorf("feature %s appears more than once", f)
		}
		seen[f] = true
	}
	return nil
}
