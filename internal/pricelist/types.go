// Package pricelist models the AWS Price List API offer JSON.
// Each entry of a GetProducts PriceList page is one serialized Offer.
package pricelist

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Offer is a single product offer with its pricing terms.
type Offer struct {
	Product         Product `json:"product"`
	Terms           Terms   `json:"terms"`
	ServiceCode     string  `json:"serviceCode"`
	Version         string  `json:"version"`
	PublicationDate string  `json:"publicationDate"`
}

// Product carries the SKU, family classification, and free-form attributes.
type Product struct {
	SKU           string            `json:"sku"`
	ProductFamily string            `json:"productFamily"`
	Attributes    map[string]string `json:"attributes"`
}

// Terms groups pricing terms by purchase model.
// Keys of the inner maps are offer term codes ("SKU.OfferTermCode").
type Terms struct {
	OnDemand map[string]Term `json:"OnDemand"`
	Reserved map[string]Term `json:"Reserved"`
}

// Term is one pricing term offer with its price dimensions.
type Term struct {
	OfferTermCode   string                    `json:"offerTermCode"`
	SKU             string                    `json:"sku"`
	EffectiveDate   string                    `json:"effectiveDate"`
	TermAttributes  TermAttributes            `json:"termAttributes"`
	PriceDimensions map[string]PriceDimension `json:"priceDimensions"`
}

// TermAttributes describe a reserved term. All three fields are empty for
// on-demand terms.
type TermAttributes struct {
	LeaseContractLength string `json:"LeaseContractLength"`
	OfferingClass       string `json:"OfferingClass"`
	PurchaseOption      string `json:"PurchaseOption"`
}

// PriceDimension is a single rate within a term.
// PricePerUnit maps currency code to a decimal amount string.
type PriceDimension struct {
	RateCode     string            `json:"rateCode"`
	Description  string            `json:"description"`
	BeginRange   string            `json:"beginRange"`
	EndRange     string            `json:"endRange"`
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

// USD returns the USD amount of the dimension, or ("", false) when the
// dimension has no USD price.
func (d PriceDimension) USD() (string, bool) {
	amount, ok := d.PricePerUnit["USD"]
	if !ok || amount == "" {
		return "", false
	}
	return amount, true
}

// DecodeOffer parses one PriceList entry.
func DecodeOffer(raw []byte) (Offer, error) {
	var o Offer
	if err := json.Unmarshal(raw, &o); err != nil {
		return Offer{}, fmt.Errorf("decoding price list offer: %w", err)
	}
	return o, nil
}
