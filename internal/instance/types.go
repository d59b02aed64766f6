// Package instance defines the canonical instance type entity and builds it
// from capability catalog records.
package instance

import (
	"strconv"

	"github.com/goccy/go-json"
)

// InstanceType is the merged entity for one instance type code. Hardware
// capabilities come from the capability catalog; the Pricing table is filled
// in afterwards by the merge engine.
type InstanceType struct {
	Type               string         `json:"instance_type"`
	Family             string         `json:"family"`
	Generation         string         `json:"generation"` // "current" or "previous"
	Arch               []string       `json:"arch"`
	VCPU               int            `json:"vCPU"`
	MemoryGiB          float64        `json:"memory"`
	ECU                ECU            `json:"ECU"`
	GPU                int            `json:"GPU"`
	FPGA               int            `json:"FPGA"`
	ClockSpeedGHz      string         `json:"clock_speed_ghz,omitempty"`
	PhysicalProcessor  string         `json:"physical_processor,omitempty"`
	NetworkPerformance string         `json:"network_performance,omitempty"`
	EnhancedNetworking bool           `json:"enhanced_networking"`
	EBSAsNVMe          bool           `json:"ebs_as_nvme"`
	VPC                *NetworkConfig `json:"vpc,omitempty"`
	IntelAVX           bool           `json:"intel_avx"`
	IntelAVX2          bool           `json:"intel_avx2"`
	IntelAVX512        bool           `json:"intel_avx512"`
	IntelTurbo         bool           `json:"intel_turbo"`

	// Pricing is region code -> platform code -> pricing bundle.
	// Entries exist only for region/platform pairs observed in a pricing
	// record; nothing is pre-populated.
	Pricing map[string]RegionPricing `json:"pricing"`
}

// NetworkConfig is the VPC networking limit pair from the detailed
// capability record.
type NetworkConfig struct {
	MaxENIs   int `json:"max_enis"`
	IPsPerENI int `json:"ips_per_eni"`
}

// RegionPricing maps platform code to the pricing bundle for one region.
type RegionPricing map[string]*PlatformPricing

// PlatformPricing is the pricing bundle for one region/platform pair.
// Reserved is present only when the upstream source offers reserved terms.
// Spot holds every observed spot price in ascending numeric order.
type PlatformPricing struct {
	OnDemand string            `json:"ondemand,omitempty"`
	Reserved map[string]string `json:"reserved,omitempty"`
	Spot     []string          `json:"spot,omitempty"`
	SpotMin  string            `json:"spot_min,omitempty"`
	SpotMax  string            `json:"spot_max,omitempty"`
}

// Bundle returns the pricing bundle for a region/platform pair, creating the
// intermediate map levels on first use.
func (i *InstanceType) Bundle(region, platform string) *PlatformPricing {
	if i.Pricing == nil {
		i.Pricing = make(map[string]RegionPricing)
	}
	rp, ok := i.Pricing[region]
	if !ok {
		rp = make(RegionPricing)
		i.Pricing[region] = rp
	}
	pp, ok := rp[platform]
	if !ok {
		pp = &PlatformPricing{}
		rp[platform] = pp
	}
	return pp
}

// ECU is a compute-unit rating: a number, the burstable "variable" sentinel,
// or unknown when the catalog record carried nothing parseable.
type ECU struct {
	Value    float64
	Variable bool
	Known    bool
}

// MarshalJSON renders the rating as a number, the string "variable",
// or null when unknown.
func (e ECU) MarshalJSON() ([]byte, error) {
	switch {
	case e.Variable:
		return []byte(`"variable"`), nil
	case e.Known:
		return []byte(strconv.FormatFloat(e.Value, 'f', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the same three forms MarshalJSON produces.
func (e *ECU) UnmarshalJSON(data []byte) error {
	*e = ECU{}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "variable" {
			e.Variable = true
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		e.Value = v
		e.Known = true
	}
	return nil
}
