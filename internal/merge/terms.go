package merge

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/finoptic/ec2catalog/internal/pricelist"
)

const hoursPerYear = 365 * 24

// sortedKeys returns map keys in sorted order so term iteration is
// deterministic; Go maps would otherwise pick an arbitrary "last" dimension.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// onDemandRate extracts the hourly on-demand rate from a record's on-demand
// terms. Normally there is exactly one term with one price dimension; when
// several USD dimensions exist the last one iterated wins. A record with no
// USD amount yields the canonical zero price.
func onDemandRate(terms map[string]pricelist.Term) (string, error) {
	price := ""
	for _, termCode := range sortedKeys(terms) {
		dims := terms[termCode].PriceDimensions
		for _, rateCode := range sortedKeys(dims) {
			if amount, ok := dims[rateCode].USD(); ok {
				price = amount
			}
		}
	}
	if price == "" {
		return FormatPrice(0), nil
	}
	return FormatPriceString(price)
}

// reservedRates decodes every reserved term of a record into the canonical
// term key -> hourly-equivalent rate map. Upfront lump sums are amortized
// over the lease length. Returns an empty map when the record offers no
// reserved terms.
func (e *Engine) reservedRates(terms map[string]pricelist.Term) (map[string]string, error) {
	rates := make(map[string]string, len(terms))
	for _, termCode := range sortedKeys(terms) {
		term := terms[termCode]
		attrs := term.TermAttributes

		// No Upfront terms carry no upfront price dimension.
		hourly := 0.0
		upfront := 0.0
		for _, rateCode := range sortedKeys(term.PriceDimensions) {
			dim := term.PriceDimensions[rateCode]
			amount, ok := dim.USD()
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(amount, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing reserved price %q: %w", amount, err)
			}
			if dim.Unit == "Hrs" {
				hourly = v
			} else {
				upfront = v
			}
		}

		key, err := e.translator.ReservedTerm(attrs.LeaseContractLength, attrs.OfferingClass, attrs.PurchaseOption)
		if err != nil {
			return nil, err
		}
		years, err := leaseYears(attrs.LeaseContractLength)
		if err != nil {
			return nil, err
		}
		rates[key] = FormatPrice(hourly + upfront/float64(years*hoursPerYear))
	}
	return rates, nil
}

// leaseYears reads the leading digit of a lease length such as "1yr" or "3yr".
func leaseYears(leaseContractLength string) (int, error) {
	if leaseContractLength == "" || leaseContractLength[0] < '0' || leaseContractLength[0] > '9' {
		return 0, fmt.Errorf("parsing lease contract length %q", leaseContractLength)
	}
	return int(leaseContractLength[0] - '0'), nil
}
