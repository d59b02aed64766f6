package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOffer = `{
  "product": {
    "productFamily": "Compute Instance",
    "sku": "ABCDEF123456",
    "attributes": {
      "instanceType": "m5.large",
      "location": "US East (N. Virginia)",
      "operatingSystem": "Linux",
      "preInstalledSw": "NA",
      "vcpu": "2",
      "memory": "8 GiB"
    }
  },
  "serviceCode": "AmazonEC2",
  "terms": {
    "OnDemand": {
      "ABCDEF123456.JRTCKXETXF": {
        "offerTermCode": "JRTCKXETXF",
        "sku": "ABCDEF123456",
        "priceDimensions": {
          "ABCDEF123456.JRTCKXETXF.6YS6EN2CT7": {
            "rateCode": "ABCDEF123456.JRTCKXETXF.6YS6EN2CT7",
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0960000000"}
          }
        }
      }
    },
    "Reserved": {
      "ABCDEF123456.4NA7Y494T4": {
        "offerTermCode": "4NA7Y494T4",
        "sku": "ABCDEF123456",
        "termAttributes": {
          "LeaseContractLength": "1yr",
          "OfferingClass": "standard",
          "PurchaseOption": "No Upfront"
        },
        "priceDimensions": {
          "ABCDEF123456.4NA7Y494T4.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0600000000"}
          }
        }
      }
    }
  }
}`

func TestDecodeOffer(t *testing.T) {
	offer, err := DecodeOffer([]byte(sampleOffer))
	require.NoError(t, err)

	assert.Equal(t, "Compute Instance", offer.Product.ProductFamily)
	assert.Equal(t, "m5.large", offer.Product.Attributes["instanceType"])
	assert.Equal(t, "AmazonEC2", offer.ServiceCode)

	require.Len(t, offer.Terms.OnDemand, 1)
	od := offer.Terms.OnDemand["ABCDEF123456.JRTCKXETXF"]
	require.Len(t, od.PriceDimensions, 1)
	dim := od.PriceDimensions["ABCDEF123456.JRTCKXETXF.6YS6EN2CT7"]
	assert.Equal(t, "Hrs", dim.Unit)
	amount, ok := dim.USD()
	require.True(t, ok)
	assert.Equal(t, "0.0960000000", amount)

	ri := offer.Terms.Reserved["ABCDEF123456.4NA7Y494T4"]
	assert.Equal(t, "1yr", ri.TermAttributes.LeaseContractLength)
	assert.Equal(t, "standard", ri.TermAttributes.OfferingClass)
	assert.Equal(t, "No Upfront", ri.TermAttributes.PurchaseOption)
}

func TestDecodeOffer_Invalid(t *testing.T) {
	_, err := DecodeOffer([]byte("{"))
	require.Error(t, err)
}

func TestPriceDimension_USD(t *testing.T) {
	dim := PriceDimension{PricePerUnit: map[string]string{"CNY": "1.2"}}
	_, ok := dim.USD()
	assert.False(t, ok)

	dim = PriceDimension{PricePerUnit: map[string]string{"USD": ""}}
	_, ok = dim.USD()
	assert.False(t, ok)

	dim = PriceDimension{}
	_, ok = dim.USD()
	assert.False(t, ok)
}
