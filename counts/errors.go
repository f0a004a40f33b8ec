package counts

import "fmt"

// TableError represents an error related with count tables
type TableError string

/*
ErrEmptyTable is the error returned when a majority label is
requested from a table whose total count is 0.
*/
const ErrEmptyTable = TableError("count table is empty")

func (te TableError) Error() string {
	return string(te)
}

/*
InvalidLabelError is returned when a label outside of the label
universe is used to build a table or to query a count or a metric.
*/
type InvalidLabelError struct {
	Label string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("invalid label %q: not in label universe", e.Label)
}

/*
InconsistencyError is returned when counts obtained from a provider
contradict each other, for instance when a subpopulation has more
individuals of a label than the population that contains it.
Have is the count that was available and Want the count that was
required of the label.
*/
type InconsistencyError struct {
	Label string
	Have  int
	Want  int
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent counts for label %q: have %d, need at least %d", e.Label, e.Have, e.Want)
}
