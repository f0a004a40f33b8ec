/*
Package json encodes feature criteria and paths as JSON.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/ancestree/feature"
)

/*
CriteriaEncodeDecoder is an interface for objects
that allow encoding paths of criteria into slices of
bytes and decoding them back to paths.
*/
type CriteriaEncodeDecoder interface {

	//Encode receives a feature.Path
	//and returns a slice of bytes with the path
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(feature.Path) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a feature.Path decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (feature.Path, error)
}

type jsonCriteriaEncodeDecoder map[feature.Feature]bool

type jsonCriterion struct {
	Feature   string `json:"f"`
	Direction string `json:"d"`
}

// NewCriteriaEncodeDecoder takes a slice of feature.Feature and returns a
// CriteriaEncodeDecoder that marshals and unmarshals
// paths into/from slices of bytes as JSON.
// Specifically, a path is encoded as a JSON array of criteria,
// each a JSON object with an "f" property set to the name of the
// feature of the criterion and a "d" property set to "with" or
// "w/o". Decoding rejects features not in the given slice.
func NewCriteriaEncodeDecoder(features []feature.Feature) CriteriaEncodeDecoder {
	jced := make(jsonCriteriaEncodeDecoder, len(features))
	for _, f := range features {
		jced[f] = true
	}
	return jced
}

func (jced jsonCriteriaEncodeDecoder) Encode(p feature.Path) ([]byte, error) {
	jcs := make([]jsonCriterion, 0, p.Len())
	for _, c := range p.Criteria() {
		if c.Direction != feature.With && c.Direction != feature.Without {
			return nil, fmt.Errorf("encoding criterion on %s: invalid direction %d", c.Feature, c.Direction)
		}
		jcs = append(jcs, jsonCriterion{c.Feature.Name(), c.Direction.String()})
	}
	return json.Marshal(jcs)
}

func (jced jsonCriteriaEncodeDecoder) Decode(data []byte) (feature.Path, error) {
	var jcs []jsonCriterion
	err := json.Unmarshal(data, &jcs)
	if err != nil {
		return feature.Path{}, err
	}
	criteria := make([]feature.Criterion, 0, len(jcs))
	for _, jc := range jcs {
		f := feature.Feature(jc.Feature)
		if !jced[f] {
			return feature.Path{}, fmt.Errorf("decoding criterion: unknown feature %q", jc.Feature)
		}
		d, err := feature.ParseDirection(jc.Direction)
		if err != nil {
			return feature.Path{}, fmt.Errorf("decoding criterion on %s: %v", f, err)
		}
		criteria = append(criteria, feature.Criterion{Feature: f, Direction: d})
	}
	return feature.NewPath(criteria...), nil
}
