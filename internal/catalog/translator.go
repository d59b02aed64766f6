// Package catalog translates upstream pricing-feed vocabulary into the
// canonical identifiers used across the instance catalog.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// UnknownTermError reports an upstream vocabulary value with no canonical
// mapping. Callers decide whether to skip the record or abort.
type UnknownTermError struct {
	Field string
	Value string
}

func (e *UnknownTermError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

// Translator maps operating system names, pre-installed software bundles and
// reserved term attributes to their canonical codes. The tables are fixed at
// construction; a Translator is immutable and safe for concurrent use.
type Translator struct {
	os       map[string]string
	software map[string]string
	leases   map[string]string
	options  map[string]string
}

// NewTranslator returns a Translator loaded with the pricing-feed vocabulary.
// The spot feed uses different names for the same operating systems, so those
// synonyms map to the same codes.
func NewTranslator() *Translator {
	return &Translator{
		os: map[string]string{
			"Linux":                            "linux",
			"RHEL":                             "rhel",
			"Red Hat Enterprise Linux with HA": "rhel",
			"SUSE":                             "sles",
			"Windows":                          "mswin",
			// Spot product descriptions
			"Linux/UNIX":               "linux",
			"Red Hat Enterprise Linux": "rhel",
			"SUSE Linux":               "sles",
		},
		software: map[string]string{
			"NA":      "",
			"SQL Std": "SQL",
			"SQL Web": "SQLWeb",
			"SQL Ent": "SQLEnterprise",
		},
		leases: map[string]string{
			"1yr": "yrTerm1",
			"3yr": "yrTerm3",
		},
		options: map[string]string{
			"All Upfront":     "allUpfront",
			"Partial Upfront": "partialUpfront",
			"No Upfront":      "noUpfront",
		},
	}
}

// Platform composes the canonical platform code for an operating system and
// pre-installed software bundle, e.g. ("Windows", "SQL Std") -> "mswinSQL".
func (t *Translator) Platform(operatingSystem, preInstalledSW string) (string, error) {
	osCode, ok := t.os[operatingSystem]
	if !ok {
		return "", &UnknownTermError{Field: "operating system", Value: operatingSystem}
	}
	swCode, ok := t.software[preInstalledSW]
	if !ok {
		return "", &UnknownTermError{Field: "pre-installed software", Value: preInstalledSW}
	}
	return osCode + swCode, nil
}

// ReservedTerm composes the canonical reserved term key, e.g.
// ("1yr", "standard", "No Upfront") -> "yrTerm1Standard.noUpfront".
// A missing offering class becomes the literal "None" token.
func (t *Translator) ReservedTerm(leaseContractLength, offeringClass, purchaseOption string) (string, error) {
	lease, ok := t.leases[leaseContractLength]
	if !ok {
		return "", &UnknownTermError{Field: "lease contract length", Value: leaseContractLength}
	}
	option, ok := t.options[purchaseOption]
	if !ok {
		return "", &UnknownTermError{Field: "purchase option", Value: purchaseOption}
	}
	if offeringClass == "" {
		offeringClass = "None"
	}
	return lease + capitalize(offeringClass) + "." + option, nil
}

// capitalize upper-cases the first letter and lower-cases the rest,
// matching how offering classes appear in term keys ("standard" -> "Standard").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

var euPrefix = regexp.MustCompile(`^EU`)

// CanonicalLocation aligns a pricing-feed location with the region catalog
// convention. The pricing feed still uses the old "EU" prefix.
func CanonicalLocation(location string) string {
	return euPrefix.ReplaceAllString(location, "Europe")
}
