package instance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBareHostType marks a catalog record for a dedicated host with no size
// suffix. Such records cannot be mapped to a concrete instance size and are
// skipped rather than built.
var ErrBareHostType = errors.New("dedicated host type without size suffix")

// metalFixups lists the bare-metal SKUs the pricing feed returns without
// their ".metal" suffix.
var metalFixups = map[string]struct{}{
	"u-6tb1":  {},
	"u-9tb1":  {},
	"u-12tb1": {},
}

// NormalizeTypeCode appends the missing ".metal" suffix to the known
// high-memory bare metal SKUs. Every other code passes through unchanged.
func NormalizeTypeCode(code string) string {
	if _, ok := metalFixups[code]; ok {
		return code + ".metal"
	}
	return code
}

// TypeDetails is the detailed capability record from the instance type API.
// When present it is authoritative for architecture and network data.
type TypeDetails struct {
	Architectures      []string
	NetworkPerformance string
	ENARequired        bool
	FPGACount          int
	MaxENIs            int
	IPsPerENI          int
}

// Attributes gives optional-field access over a raw catalog attribute map.
type Attributes map[string]string

// Get returns the attribute value and whether the key was present.
func (a Attributes) Get(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// atoiGrouped parses an integer that may carry thousands separators.
func atoiGrouped(s string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(s, ",", ""))
}

// atofGrouped parses a float that may carry thousands separators.
func atofGrouped(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// Build constructs the canonical entity for one capability catalog record.
// details may be nil; defaulting rules then apply for architecture and
// network performance. Returns ErrBareHostType for codes with no dot
// delimited size suffix.
func Build(typeCode string, attrs Attributes, details *TypeDetails) (*InstanceType, error) {
	if !strings.Contains(typeCode, ".") {
		return nil, ErrBareHostType
	}

	inst := &InstanceType{
		Type:   typeCode,
		Family: attrs["instanceFamily"],
	}

	vcpu, err := atoiGrouped(attrs["vcpu"])
	if err != nil {
		return nil, fmt.Errorf("parsing vcpu %q: %w", attrs["vcpu"], err)
	}
	inst.VCPU = vcpu

	// Memory arrives as e.g. "1,952 GiB"
	memory, _, _ := strings.Cut(attrs["memory"], " ")
	inst.MemoryGiB, err = atofGrouped(memory)
	if err != nil {
		return nil, fmt.Errorf("parsing memory %q: %w", attrs["memory"], err)
	}

	if details != nil {
		inst.Arch = details.Architectures
		inst.NetworkPerformance = details.NetworkPerformance
		inst.FPGA = details.FPGACount
		inst.EBSAsNVMe = details.ENARequired
		inst.VPC = &NetworkConfig{
			MaxENIs:   details.MaxENIs,
			IPsPerENI: details.IPsPerENI,
		}
	} else {
		// Without a detailed record assume x86_64.
		inst.Arch = []string{"x86_64"}
		if strings.Contains(attrs["processorArchitecture"], "32-bit") {
			inst.Arch = append(inst.Arch, "i386")
		}
		inst.NetworkPerformance = attrs["networkPerformance"]
	}

	if attrs["currentGeneration"] == "Yes" {
		inst.Generation = "current"
	} else {
		inst.Generation = "previous"
	}

	// GPU count is frequently absent; absence means zero.
	if gpu, ok := attrs.Get("gpu"); ok {
		if n, err := atoiGrouped(gpu); err == nil {
			inst.GPU = n
		}
	}

	// ECU is non-essential; parse failures leave the rating unknown.
	if ecu, ok := attrs.Get("ecu"); ok {
		if ecu == "Variable" {
			inst.ECU = ECU{Variable: true}
		} else if v, err := atofGrouped(ecu); err == nil {
			inst.ECU = ECU{Value: v, Known: true}
		}
	}

	inst.PhysicalProcessor = attrs["physicalProcessor"]
	inst.ClockSpeedGHz = attrs["clockSpeed"]

	// Each feature substring is checked on its own; "Intel AVX512" in the
	// text does not imply the AVX or AVX2 flags.
	if features, ok := attrs.Get("processorFeatures"); ok {
		inst.IntelAVX512 = strings.Contains(features, "Intel AVX512")
		inst.IntelAVX2 = strings.Contains(features, "Intel AVX2")
		inst.IntelAVX = strings.Contains(features, "Intel AVX")
		inst.IntelTurbo = strings.Contains(features, "Intel Turbo")
	}

	if attrs["enhancedNetworkingSupported"] == "Yes" {
		inst.EnhancedNetworking = true
	}

	return inst, nil
}
