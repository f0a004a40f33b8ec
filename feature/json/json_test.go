package json

import (
	"testing"

	"github.com/pbanos/ancestree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePath(t *testing.T) {
	ced := NewCriteriaEncodeDecoder([]feature.Feature{"F1", "F2"})
	p := feature.NewPath().Extend("F2", feature.Without).Extend("F1", feature.With)

	data, err := ced.Encode(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"f":"F2","d":"w/o"},{"f":"F1","d":"with"}]`, string(data))

	decoded, err := ced.Decode(data)
	require.NoError(t, err)
	assert.True(t, p.Equal(decoded))
}

func TestDecodeRejectsUnknownFeatures(t *testing.T) {
	ced := NewCriteriaEncodeDecoder([]feature.Feature{"F1"})
	_, err := ced.Decode([]byte(`[{"f":"F9","d":"with"}]`))
	assert.Error(t, err)
	_, err = ced.Decode([]byte(`[{"f":"F1","d":"up"}]`))
	assert.Error(t, err)
}
