package yaml

import (
	"testing"

	"github.com/pbanos/ancestree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte("variants:\n  - \"22:16050074:16050075\"\n  - \"22:16050114:16050115\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []feature.Feature{"22:16050074:16050075", "22:16050114:16050115"}, features)

	_, err = ReadFeatures([]byte("variants: []\n"))
	assert.Error(t, err)
	_, err = ReadFeatures([]byte("variants:\n  - a\n  - a\n"))
	assert.Error(t, err)
	_, err = ReadFeatures([]byte("variants: {"))
	assert.Error(t, err)
}
