package tree

import (
	"fmt"
	"strings"
)

/*
Prediction represents a prediction made by a decision Tree: the majority
label of the leaf a sample reached, along with the leaf itself.
*/
type Prediction struct {
	// Label is the predicted label
	Label string
	// Node is the leaf that supports the prediction
	Node *Node
}

/*
ProbabilityOf takes a label and returns the fraction of the training
individuals reaching the supporting node that had it.
*/
func (p *Prediction) ProbabilityOf(label string) float64 {
	return p.Node.Counts().Probabilities()[label]
}

/*
Probabilities returns a map of label to float64 containing
the probabilities of each label on the supporting node
*/
func (p *Prediction) Probabilities() map[string]float64 {
	return p.Node.Counts().Probabilities()
}

/*
Weight returns the weight of the prediction: an
int equal to the number of training individuals that reached
the supporting node
*/
func (p *Prediction) Weight() int {
	return p.Node.Total()
}

func (p *Prediction) String() string {
	return fmt.Sprintf("%s %s", p.Label, strings.Replace(fmt.Sprintf("%v", p.Probabilities()), "map", "", 1))
}
