package evaluation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/ancestree/counts"
	"github.com/pbanos/ancestree/feature"
	"github.com/pbanos/ancestree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func universe(t *testing.T) *counts.Universe {
	u, err := counts.NewUniverse("A", "B")
	require.NoError(t, err)
	return u
}

func sampleMatrix(t *testing.T) *ConfusionMatrix {
	cm, err := FromCounts(universe(t), [][]int{{3, 1}, {0, 4}})
	require.NoError(t, err)
	return cm
}

func TestMetrics(t *testing.T) {
	cm := sampleMatrix(t)
	assert.Equal(t, 8, cm.Total())
	assert.Equal(t, 7, cm.Correct())

	accuracy, err := cm.Accuracy()
	require.NoError(t, err)
	assert.InDelta(t, 0.875, accuracy, 1e-12)
	mr, err := cm.MisclassificationRate()
	require.NoError(t, err)
	assert.InDelta(t, 0.125, mr, 1e-12)

	tr, err := cm.TrueRate("A")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, tr, 1e-12)
	tr, err = cm.TrueRate("B")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tr, 1e-12)
	fr, err := cm.FalseRate("A")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, fr, 1e-12)

	p, err := cm.Precision("A")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-12)
	p, err = cm.Precision("B")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, p, 1e-12)

	pv, err := cm.Prevalence("A")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pv, 1e-12)
}

func TestSumsAndCounts(t *testing.T) {
	cm := sampleMatrix(t)
	var sum int
	for _, l := range cm.Labels().Labels() {
		rs, err := cm.RowSum(l)
		require.NoError(t, err)
		sum += rs
	}
	assert.Equal(t, cm.Total(), sum)
	cs, err := cm.ColumnSum("B")
	require.NoError(t, err)
	assert.Equal(t, 5, cs)
	n, err := cm.Count("A", "B")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows := cm.Rows()
	rows[0][0] = 100
	n, _ = cm.Count("A", "A")
	assert.Equal(t, 3, n)
}

func TestUndefinedRates(t *testing.T) {
	empty, err := FromCounts(universe(t), [][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)
	_, err = empty.Accuracy()
	var ure *UndefinedRateError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "accuracy", ure.Metric)

	cm, err := FromCounts(universe(t), [][]int{{2, 0}, {0, 0}})
	require.NoError(t, err)
	_, err = cm.TrueRate("B")
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "B", ure.Label)
	_, err = cm.FalseRate("B")
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "false rate", ure.Metric)
	_, err = cm.Precision("B")
	require.True(t, errors.As(err, &ure))
}

func TestUnknownLabel(t *testing.T) {
	cm := sampleMatrix(t)
	_, err := cm.TrueRate("C")
	var ile *counts.InvalidLabelError
	require.True(t, errors.As(err, &ile))
	assert.Equal(t, "C", ile.Label)
}

func TestFromCountsRejectsShape(t *testing.T) {
	_, err := FromCounts(universe(t), [][]int{{1, 2}})
	assert.Error(t, err)
	_, err = FromCounts(universe(t), [][]int{{1}, {2, 3}})
	assert.Error(t, err)
	_, err = FromCounts(universe(t), [][]int{{1, -1}, {2, 3}})
	assert.Error(t, err)
}

type fixedPredictor struct {
	label string
	err   error
}

func (fp fixedPredictor) Predict(feature.Sample) (*tree.Prediction, error) {
	if fp.err != nil {
		return nil, fp.err
	}
	return &tree.Prediction{Label: fp.label}, nil
}

func TestNewConfusionMatrix(t *testing.T) {
	samples := []Sample{
		{ID: "s1", Features: feature.NewSet(), Label: "A"},
		{ID: "s2", Features: feature.NewSet(), Label: "B"},
		{ID: "s3", Features: feature.NewSet(), Label: "B"},
	}
	cm, err := NewConfusionMatrix(context.Background(), fixedPredictor{label: "B"}, samples, universe(t))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {0, 2}}, cm.Rows())

	_, err = NewConfusionMatrix(context.Background(), fixedPredictor{label: "C"}, samples, universe(t))
	var ile *counts.InvalidLabelError
	require.True(t, errors.As(err, &ile))
	assert.Equal(t, "C", ile.Label)

	boom := errors.New("boom")
	_, err = NewConfusionMatrix(context.Background(), fixedPredictor{err: boom}, samples, universe(t))
	assert.True(t, errors.Is(err, boom))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewConfusionMatrix(ctx, fixedPredictor{label: "A"}, samples, universe(t))
	assert.Equal(t, context.Canceled, err)
}

func TestRender(t *testing.T) {
	cm := sampleMatrix(t)
	buf := &bytes.Buffer{}
	cm.Render(buf)
	assert.Contains(t, strings.ToLower(buf.String()), "actual")
	buf.Reset()
	cm.RenderReport(buf)
	assert.Contains(t, buf.String(), "0.7500")
	assert.Contains(t, buf.String(), "0.8750")
}
