// Package merge reconciles the on-demand, reserved and spot pricing feeds
// into the per-instance pricing tables. One malformed record never aborts a
// batch: every record merges independently and failures become diagnostics.
package merge

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finoptic/ec2catalog/internal/catalog"
	"github.com/finoptic/ec2catalog/internal/instance"
	"github.com/finoptic/ec2catalog/internal/pricelist"
)

// Skip reasons recognized by the per-record classifier.
var (
	// ErrUnknownLocation marks a record whose location description is not
	// in the region catalog (typically a region newer than the catalog).
	ErrUnknownLocation = errors.New("unknown location")
	// ErrUnknownInstance marks a record for a type code absent from the
	// base entity set.
	ErrUnknownInstance = errors.New("unknown instance type")
)

// RecordError is one failed pricing record.
type RecordError struct {
	InstanceType string
	Err          error
}

// Diagnostics summarizes everything the engine skipped during a run.
type Diagnostics struct {
	UnknownLocations   int
	UnknownInstances   int
	RecordErrors       []RecordError
	SkippedSpotRegions []string
}

// Engine enriches the instance entity map with pricing data.
// It is single-threaded: callers feed it one record at a time.
type Engine struct {
	translator *catalog.Translator
	regions    *catalog.RegionResolver
	logger     zerolog.Logger
	diags      Diagnostics
}

// NewEngine returns an Engine using the given vocabulary translator and
// region resolver.
func NewEngine(translator *catalog.Translator, regions *catalog.RegionResolver, logger zerolog.Logger) *Engine {
	return &Engine{
		translator: translator,
		regions:    regions,
		logger:     logger,
	}
}

// Diagnostics returns the skip counters and record errors accumulated so far.
func (e *Engine) Diagnostics() Diagnostics {
	return e.diags
}

// MergeProducts merges a batch of on-demand/reserved pricing offers.
func (e *Engine) MergeProducts(entities map[string]*instance.InstanceType, offers []pricelist.Offer) {
	for _, offer := range offers {
		e.MergeProduct(entities, offer)
	}
}

// MergeProduct merges one pricing offer, classifying any failure into the
// run diagnostics instead of returning it.
func (e *Engine) MergeProduct(entities map[string]*instance.InstanceType, offer pricelist.Offer) {
	attrs := offer.Product.Attributes
	instanceType := attrs["instanceType"]
	location := catalog.CanonicalLocation(attrs["location"])

	err := e.mergeProduct(entities, offer, instanceType, location)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownLocation):
		e.diags.UnknownLocations++
		e.logger.Warn().Str("instance_type", instanceType).Str("location", location).
			Msg("ignoring pricing: unknown location")
	case errors.Is(err, ErrUnknownInstance):
		e.diags.UnknownInstances++
		e.logger.Warn().Str("instance_type", instanceType).Str("location", location).
			Msg("ignoring pricing: unknown instance type")
	default:
		e.diags.RecordErrors = append(e.diags.RecordErrors, RecordError{InstanceType: instanceType, Err: err})
		e.logger.Error().Str("instance_type", instanceType).Err(err).
			Msg("failed to add pricing")
	}
}

// mergeProduct applies one on-demand/reserved record to its entity.
func (e *Engine) mergeProduct(entities map[string]*instance.InstanceType, offer pricelist.Offer, instanceType, location string) error {
	region, ok := e.regions.Resolve(location)
	if !ok {
		return ErrUnknownLocation
	}

	attrs := offer.Product.Attributes
	platform, err := e.translator.Platform(attrs["operatingSystem"], attrs["preInstalledSw"])
	if err != nil {
		return err
	}

	inst, ok := entities[instanceType]
	if !ok {
		return ErrUnknownInstance
	}

	ondemand, err := onDemandRate(offer.Terms.OnDemand)
	if err != nil {
		return fmt.Errorf("on-demand terms: %w", err)
	}
	reserved, err := e.reservedRates(offer.Terms.Reserved)
	if err != nil {
		return fmt.Errorf("reserved terms: %w", err)
	}

	bundle := inst.Bundle(region, platform)
	bundle.OnDemand = ondemand
	// Some instances offer no reserved terms at all.
	if len(reserved) > 0 {
		bundle.Reserved = reserved
	}
	return nil
}
