package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoints(t *testing.T) {
	const raw = `{
	  "partitions": [
	    {
	      "partition": "aws",
	      "regions": {
	        "us-east-1": {"description": "US East (N. Virginia)"},
	        "eu-central-1": {"description": "Europe (Frankfurt)"}
	      }
	    },
	    {
	      "partition": "aws-cn",
	      "regions": {
	        "cn-north-1": {"description": "China (Beijing)"}
	      }
	    }
	  ]
	}`

	descriptions, err := ParseEndpoints(strings.NewReader(raw))
	require.NoError(t, err)

	// Flattened across partitions
	assert.Equal(t, map[string]string{
		"US East (N. Virginia)": "us-east-1",
		"Europe (Frankfurt)":    "eu-central-1",
		"China (Beijing)":       "cn-north-1",
	}, descriptions)
}

func TestParseEndpoints_Invalid(t *testing.T) {
	_, err := ParseEndpoints(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestRegionResolver_Resolve(t *testing.T) {
	r := NewRegionResolver(map[string]string{
		"US East (N. Virginia)": "us-east-1",
	})

	region, ok := r.Resolve("US East (N. Virginia)")
	require.True(t, ok)
	assert.Equal(t, "us-east-1", region)

	// Absence is not an error
	_, ok = r.Resolve("Mars (Olympus Mons)")
	assert.False(t, ok)
}

func TestDefaultRegionResolver(t *testing.T) {
	r, err := DefaultRegionResolver()
	require.NoError(t, err)
	require.NotZero(t, r.Len())

	tests := []struct {
		description string
		want        string
	}{
		{"US East (N. Virginia)", "us-east-1"},
		{"Europe (Frankfurt)", "eu-central-1"},
		{"AWS GovCloud (US-West)", "us-gov-west-1"},
		{"China (Beijing)", "cn-north-1"},
	}
	for _, tt := range tests {
		region, ok := r.Resolve(tt.description)
		require.True(t, ok, tt.description)
		assert.Equal(t, tt.want, region)
	}
}
