/*
Package evaluation measures how well a tree predicts the labels of
individuals whose labels are known.
*/
package evaluation

import (
	"context"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/pkg/errors"
)

/*
Sample is an individual whose label is known, used to evaluate
predictions.
*/
type Sample struct {
	ID       string
	Features feature.Sample
	Label    string
}

// Predictor is the interface for anything predicting labels
// for samples, such as a *tree.Tree.
type Predictor interface {
	Predict(s feature.Sample) (*tree.Prediction, error)
}

/*
ConfusionMatrix counts, for every pair of labels, how many samples
with the first label as actual label were predicted the second label.
Labels are indexed in the order of the universe the matrix is created
with.
*/
type ConfusionMatrix struct {
	labels *counts.Universe
	cells  [][]int
	total  int
}

func newMatrix(labels *counts.Universe) *ConfusionMatrix {
	cells := make([][]int, labels.Len())
	for i := range cells {
		cells[i] = make([]int, labels.Len())
	}
	return &ConfusionMatrix{labels: labels, cells: cells}
}

/*
NewConfusionMatrix takes a context, a predictor, samples and the label
universe and returns the confusion matrix for the predictions of the
predictor on the samples. A *counts.InvalidLabelError is returned if a
sample label or a predicted label is not in the universe. A prediction
error or the cancellation of the context aborts the evaluation.
*/
func NewConfusionMatrix(ctx context.Context, p Predictor, samples []Sample, labels *counts.Universe) (*ConfusionMatrix, error) {
	cm := newMatrix(labels)
	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		actual, ok := labels.Index(s.Label)
		if !ok {
			return nil, errors.Wrapf(&counts.InvalidLabelError{Label: s.Label}, "evaluating sample %s", s.ID)
		}
		prediction, err := p.Predict(s.Features)
		if err != nil {
			return nil, errors.Wrapf(err, "predicting sample %s", s.ID)
		}
		predicted, ok := labels.Index(prediction.Label)
		if !ok {
			return nil, errors.Wrapf(&counts.InvalidLabelError{Label: prediction.Label}, "evaluating sample %s", s.ID)
		}
		cm.cells[actual][predicted]++
		cm.total++
	}
	return cm, nil
}

/*
FromCounts takes a label universe and the rows of a confusion matrix,
indexed as [actual][predicted] in the order of the universe, and
returns the ConfusionMatrix for them. An error is returned if the rows
do not form a square matrix of the universe size or hold negative
counts.
*/
func FromCounts(labels *counts.Universe, rows [][]int) (*ConfusionMatrix, error) {
	if len(rows) != labels.Len() {
		return nil, errors.Errorf("confusion matrix has %d rows for %d labels", len(rows), labels.Len())
	}
	cm := newMatrix(labels)
	for i, row := range rows {
		if len(row) != labels.Len() {
			return nil, errors.Errorf("confusion matrix row %s has %d columns for %d labels", labels.Label(i), len(row), labels.Len())
		}
		for j, n := range row {
			if n < 0 {
				return nil, &counts.InconsistencyError{Label: labels.Label(i), Have: n, Want: 0}
			}
			cm.cells[i][j] = n
			cm.total += n
		}
	}
	return cm, nil
}

// Labels returns the label universe of the matrix.
func (cm *ConfusionMatrix) Labels() *counts.Universe {
	return cm.labels
}

// Rows returns a copy of the matrix cells as [actual][predicted].
func (cm *ConfusionMatrix) Rows() [][]int {
	rows := make([][]int, len(cm.cells))
	for i, row := range cm.cells {
		rows[i] = append([]int(nil), row...)
	}
	return rows
}

// Total returns the number of samples counted.
func (cm *ConfusionMatrix) Total() int {
	return cm.total
}

// Correct returns the number of samples whose
// predicted label was their actual label.
func (cm *ConfusionMatrix) Correct() int {
	var correct int
	for i := range cm.cells {
		correct += cm.cells[i][i]
	}
	return correct
}

func (cm *ConfusionMatrix) index(label string) (int, error) {
	i, ok := cm.labels.Index(label)
	if !ok {
		return 0, &counts.InvalidLabelError{Label: label}
	}
	return i, nil
}

// Count returns the number of samples with the actual label
// that were predicted the predicted label.
func (cm *ConfusionMatrix) Count(actual, predicted string) (int, error) {
	i, err := cm.index(actual)
	if err != nil {
		return 0, err
	}
	j, err := cm.index(predicted)
	if err != nil {
		return 0, err
	}
	return cm.cells[i][j], nil
}

// RowSum returns the number of samples with the given actual label.
func (cm *ConfusionMatrix) RowSum(label string) (int, error) {
	i, err := cm.index(label)
	if err != nil {
		return 0, err
	}
	return cm.rowSum(i), nil
}

// ColumnSum returns the number of samples predicted the given label.
func (cm *ConfusionMatrix) ColumnSum(label string) (int, error) {
	j, err := cm.index(label)
	if err != nil {
		return 0, err
	}
	return cm.columnSum(j), nil
}

func (cm *ConfusionMatrix) rowSum(i int) int {
	var sum int
	for _, n := range cm.cells[i] {
		sum += n
	}
	return sum
}

func (cm *ConfusionMatrix) columnSum(j int) int {
	var sum int
	for i := range cm.cells {
		sum += cm.cells[i][j]
	}
	return sum
}
