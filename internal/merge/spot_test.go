package merge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spotObservation(price string) SpotPrice {
	return SpotPrice{
		InstanceType:       "m5.large",
		AvailabilityZone:   "us-east-1a",
		ProductDescription: "Linux/UNIX",
		Price:              price,
	}
}

func TestEngine_MergeSpot_Ordering(t *testing.T) {
	e := testEngine()
	entities := m5Large()

	e.MergeSpot(entities, []SpotPrice{
		spotObservation("0.05"),
		spotObservation("0.02"),
		spotObservation("0.08"),
	})

	bundle := entities["m5.large"].Pricing["us-east-1"]["linux"]
	require.NotNil(t, bundle)
	assert.Equal(t, []string{"0.02", "0.05", "0.08"}, bundle.Spot)
	assert.Equal(t, "0.02", bundle.SpotMin)
	assert.Equal(t, "0.08", bundle.SpotMax)
	// Spot-only bundles have no on-demand price.
	assert.Empty(t, bundle.OnDemand)
}

func TestEngine_MergeSpot_ZoneToRegion(t *testing.T) {
	e := testEngine()
	entities := m5Large()

	obs := spotObservation("0.03")
	obs.AvailabilityZone = "eu-central-1b"
	obs.ProductDescription = "SUSE Linux"
	e.MergeSpot(entities, []SpotPrice{obs})

	bundle := entities["m5.large"].Pricing["eu-central-1"]["sles"]
	require.NotNil(t, bundle)
	assert.Equal(t, []string{"0.03"}, bundle.Spot)
}

func TestEngine_MergeSpot_UnknownInstance(t *testing.T) {
	e := testEngine()
	entities := m5Large()

	obs := spotObservation("0.03")
	obs.InstanceType = "x9.mega"
	e.MergeSpot(entities, []SpotPrice{obs})

	assert.Equal(t, 1, e.Diagnostics().UnknownInstances)
	assert.Empty(t, entities["m5.large"].Pricing)
}

func TestEngine_MergeSpot_BadPrice(t *testing.T) {
	e := testEngine()
	entities := m5Large()

	e.MergeSpot(entities, []SpotPrice{spotObservation("gratis")})
	require.Len(t, e.Diagnostics().RecordErrors, 1)
	assert.Empty(t, entities["m5.large"].Pricing)
}

// fakeSpotSource serves canned observations per region and fails for
// regions in the errs set.
type fakeSpotSource struct {
	prices  map[string][]SpotPrice
	errs    map[string]error
	queried []string
}

func (f *fakeSpotSource) SpotPrices(_ context.Context, region string, _ []string) ([]SpotPrice, error) {
	f.queried = append(f.queried, region)
	if err := f.errs[region]; err != nil {
		return nil, err
	}
	return f.prices[region], nil
}

func TestEngine_MergeSpotRegions(t *testing.T) {
	e := testEngine()
	entities := m5Large()

	// The instance already has pricing observed in two regions.
	entities["m5.large"].Bundle("us-east-1", "linux")
	entities["m5.large"].Bundle("eu-central-1", "linux")

	src := &fakeSpotSource{
		prices: map[string][]SpotPrice{
			"us-east-1": {spotObservation("0.04")},
		},
		// An inaccessible region is skipped silently, not fatal.
		errs: map[string]error{
			"eu-central-1": errors.New("not authorized"),
		},
	}
	err := e.MergeSpotRegions(context.Background(), entities, src)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"us-east-1", "eu-central-1"}, src.queried)
	assert.Equal(t, []string{"0.04"}, entities["m5.large"].Pricing["us-east-1"]["linux"].Spot)
	assert.Equal(t, []string{"eu-central-1"}, e.Diagnostics().SkippedSpotRegions)
}
