package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// The pricing feed keys records by human readable location descriptions,
// so resolving them needs the endpoint catalog's description -> region map.
//go:embed data/endpoints.json
var embeddedEndpoints []byte

// endpointsFile mirrors the layout of the AWS endpoints catalog
// (botocore data/endpoints.json). Only the fields we read are declared.
type endpointsFile struct {
	Partitions []struct {
		Partition string `json:"partition"`
		Regions   map[string]struct {
			Description string `json:"description"`
		} `json:"regions"`
	} `json:"partitions"`
}

// RegionResolver maps location descriptions to canonical region codes.
// Build it once per run; lookups are read-only afterwards.
type RegionResolver struct {
	byDescription map[string]string
}

// NewRegionResolver wraps an already flattened description -> region map.
func NewRegionResolver(descriptions map[string]string) *RegionResolver {
	return &RegionResolver{byDescription: descriptions}
}

// ParseEndpoints reads an endpoints catalog and flattens the region
// descriptions across all partitions.
func ParseEndpoints(r io.Reader) (map[string]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading endpoints catalog: %w", err)
	}
	var file endpointsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing endpoints catalog: %w", err)
	}
	descriptions := make(map[string]string)
	for _, partition := range file.Partitions {
		for region, meta := range partition.Regions {
			descriptions[meta.Description] = region
		}
	}
	return descriptions, nil
}

// DefaultRegionResolver builds a resolver from the embedded endpoints
// catalog snapshot. The snapshot can lag behind newly launched regions;
// records in such regions are skipped with a warning by the merge engine.
func DefaultRegionResolver() (*RegionResolver, error) {
	descriptions, err := ParseEndpoints(bytes.NewReader(embeddedEndpoints))
	if err != nil {
		return nil, err
	}
	return NewRegionResolver(descriptions), nil
}

// Resolve returns the region code for a location description.
// Unknown descriptions are not an error; the caller decides how to react.
func (r *RegionResolver) Resolve(description string) (string, bool) {
	region, ok := r.byDescription[description]
	return region, ok
}

// Len reports how many descriptions the resolver knows.
func (r *RegionResolver) Len() int {
	return len(r.byDescription)
}
