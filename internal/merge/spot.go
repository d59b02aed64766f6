package merge

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finoptic/ec2catalog/internal/instance"
)

// SpotPrice is one spot market observation.
type SpotPrice struct {
	InstanceType       string
	AvailabilityZone   string
	ProductDescription string
	Price              string
}

// SpotSource fetches the current spot price history for a set of instance
// types in one region.
type SpotSource interface {
	SpotPrices(ctx context.Context, region string, instanceTypes []string) ([]SpotPrice, error)
}

// MergeSpotRegions walks every region already present in the entity pricing
// tables and merges that region's spot observations. A region whose provider
// call fails (not spot-enabled, inaccessible) is skipped: expected, so only
// a debug event is emitted.
func (e *Engine) MergeSpotRegions(ctx context.Context, entities map[string]*instance.InstanceType, src SpotSource) error {
	instanceTypes := sortedKeys(entities)

	regionSet := make(map[string]struct{})
	for _, code := range instanceTypes {
		for region := range entities[code].Pricing {
			regionSet[region] = struct{}{}
		}
	}

	for _, region := range sortedKeys(regionSet) {
		prices, err := src.SpotPrices(ctx, region, instanceTypes)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.diags.SkippedSpotRegions = append(e.diags.SkippedSpotRegions, region)
			e.logger.Debug().Str("region", region).Err(err).Msg("skipping spot pricing for region")
			continue
		}
		e.MergeSpot(entities, prices)
	}
	return nil
}

// MergeSpot merges a batch of spot observations.
func (e *Engine) MergeSpot(entities map[string]*instance.InstanceType, prices []SpotPrice) {
	for _, price := range prices {
		if err := e.mergeSpotPrice(entities, price); err != nil {
			switch err {
			case ErrUnknownInstance:
				e.diags.UnknownInstances++
				e.logger.Warn().Str("instance_type", price.InstanceType).
					Str("availability_zone", price.AvailabilityZone).
					Msg("ignoring spot pricing: unknown instance type")
			default:
				e.diags.RecordErrors = append(e.diags.RecordErrors, RecordError{InstanceType: price.InstanceType, Err: err})
				e.logger.Error().Str("instance_type", price.InstanceType).Err(err).
					Msg("failed to add spot pricing")
			}
		}
	}
}

// mergeSpotPrice inserts one observation, keeping the bundle's spot list in
// ascending numeric order and its min/max fields current.
func (e *Engine) mergeSpotPrice(entities map[string]*instance.InstanceType, price SpotPrice) error {
	inst, ok := entities[price.InstanceType]
	if !ok {
		return ErrUnknownInstance
	}

	// Spot prices come from the spot feed vocabulary, never with software.
	platform, err := e.translator.Platform(price.ProductDescription, "NA")
	if err != nil {
		return err
	}
	if len(price.AvailabilityZone) < 2 {
		return fmt.Errorf("malformed availability zone %q", price.AvailabilityZone)
	}
	// The zone's trailing letter narrows the region; strip it.
	region := price.AvailabilityZone[:len(price.AvailabilityZone)-1]

	if _, err := decimal.NewFromString(price.Price); err != nil {
		return fmt.Errorf("parsing spot price %q: %w", price.Price, err)
	}

	bundle := inst.Bundle(region, platform)
	if bundle.Spot == nil {
		bundle.Spot = []string{}
		bundle.SpotMin = "N/A"
		bundle.SpotMax = "N/A"
	}
	bundle.Spot = append(bundle.Spot, price.Price)
	sort.Slice(bundle.Spot, func(i, j int) bool {
		a, _ := decimal.NewFromString(bundle.Spot[i])
		b, _ := decimal.NewFromString(bundle.Spot[j])
		return a.LessThan(b)
	})
	bundle.SpotMin = bundle.Spot[0]
	bundle.SpotMax = bundle.Spot[len(bundle.Spot)-1]
	return nil
}
