/*
Package yaml provides methods to parse the list of features a tree
may be grown on, also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/ancestree/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a variants property with
the list of variant identifiers to use as features, in the order in which
they must be considered when growing a tree.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata := struct {
		Variants []string `yaml:"variants"`
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if len(metadata.Variants) == 0 {
		return nil, fmt.Errorf("metadata file has no variant information")
	}
	features := make([]feature.Feature, 0, len(metadata.Variants))
	for _, v := range metadata.Variants {
		features = append(features, feature.Feature(v))
	}
	if err = feature.Distinct(features); err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return features, err
}
