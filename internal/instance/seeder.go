package instance

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/finoptic/ec2catalog/internal/pricelist"
)

// seedProductFamilies are the product families that describe compute
// capacity; everything else in the capability feed is ignored.
var seedProductFamilies = map[string]struct{}{
	"Compute Instance":              {},
	"Compute Instance (bare metal)": {},
	"Dedicated Host":                {},
}

// Seeder accumulates the base entity map from capability catalog offers.
// The first record seen for a type code wins; later duplicates are ignored.
type Seeder struct {
	details map[string]*TypeDetails
	types   map[string]*InstanceType
	logger  zerolog.Logger
}

// NewSeeder returns a Seeder. details maps type code to the detailed
// capability record and may be nil when that API is unavailable.
func NewSeeder(details map[string]*TypeDetails, logger zerolog.Logger) *Seeder {
	return &Seeder{
		details: details,
		types:   make(map[string]*InstanceType),
		logger:  logger,
	}
}

// Add feeds one capability catalog offer into the entity map. Offers that
// are not compute capacity, duplicate an existing entity, or describe a bare
// dedicated host are ignored; malformed records are logged and skipped.
func (s *Seeder) Add(offer pricelist.Offer) {
	if _, ok := seedProductFamilies[offer.Product.ProductFamily]; !ok {
		return
	}

	typeCode := NormalizeTypeCode(offer.Product.Attributes["instanceType"])
	if _, ok := s.types[typeCode]; ok {
		return
	}

	inst, err := Build(typeCode, offer.Product.Attributes, s.details[typeCode])
	if err != nil {
		if !errors.Is(err, ErrBareHostType) {
			s.logger.Warn().Str("instance_type", typeCode).Err(err).
				Msg("skipping malformed capability record")
		}
		return
	}
	s.types[typeCode] = inst
}

// Instances returns the accumulated entity map.
func (s *Seeder) Instances() map[string]*InstanceType {
	return s.types
}

// TypeCodes returns the discovered type codes in sorted order.
func (s *Seeder) TypeCodes() []string {
	codes := make([]string, 0, len(s.types))
	for code := range s.types {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
