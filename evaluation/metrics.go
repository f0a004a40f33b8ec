package evaluation

import "fmt"

/*
UndefinedRateError is returned when a metric cannot be computed because
its denominator is zero. Label is empty for metrics over all labels.
*/
type UndefinedRateError struct {
	Metric string
	Label  string
}

func (e *UndefinedRateError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("%s is undefined on an empty confusion matrix", e.Metric)
	}
	return fmt.Sprintf("%s is undefined for label %q", e.Metric, e.Label)
}

// Accuracy returns the share of samples predicted their actual label.
func (cm *ConfusionMatrix) Accuracy() (float64, error) {
	if cm.total == 0 {
		return 0, &UndefinedRateError{Metric: "accuracy"}
	}
	return float64(cm.Correct()) / float64(cm.total), nil
}

// MisclassificationRate returns the share of samples
// predicted a label other than their actual one.
func (cm *ConfusionMatrix) MisclassificationRate() (float64, error) {
	if cm.total == 0 {
		return 0, &UndefinedRateError{Metric: "misclassification rate"}
	}
	accuracy, _ := cm.Accuracy()
	return 1 - accuracy, nil
}

/*
TrueRate returns the share of samples with the given actual label that
were predicted that label. It is also known as recall or sensitivity.
*/
func (cm *ConfusionMatrix) TrueRate(label string) (float64, error) {
	i, err := cm.index(label)
	if err != nil {
		return 0, err
	}
	rs := cm.rowSum(i)
	if rs == 0 {
		return 0, &UndefinedRateError{Metric: "true rate", Label: label}
	}
	return float64(cm.cells[i][i]) / float64(rs), nil
}

// FalseRate returns the share of samples with the given actual
// label that were predicted another label.
func (cm *ConfusionMatrix) FalseRate(label string) (float64, error) {
	tr, err := cm.TrueRate(label)
	if err != nil {
		if ure, ok := err.(*UndefinedRateError); ok {
			ure.Metric = "false rate"
		}
		return 0, err
	}
	return 1 - tr, nil
}

// Precision returns the share of samples predicted the
// given label whose actual label it was.
func (cm *ConfusionMatrix) Precision(label string) (float64, error) {
	j, err := cm.index(label)
	if err != nil {
		return 0, err
	}
	cs := cm.columnSum(j)
	if cs == 0 {
		return 0, &UndefinedRateError{Metric: "precision", Label: label}
	}
	return float64(cm.cells[j][j]) / float64(cs), nil
}

// Prevalence returns the share of samples with the given actual label.
func (cm *ConfusionMatrix) Prevalence(label string) (float64, error) {
	i, err := cm.index(label)
	if err != nil {
		return 0, err
	}
	if cm.total == 0 {
		return 0, &UndefinedRateError{Metric: "prevalence", Label: label}
	}
	return float64(cm.rowSum(i)) / float64(cm.total), nil
}
