package fetch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"

	"github.com/finoptic/ec2catalog/internal/pricelist"
)

const serviceCodeEC2 = "AmazonEC2"

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Type:  types.FilterTypeTermMatch,
		Field: aws.String(field),
		Value: aws.String(value),
	}
}

// products pages through GetProducts with the given filters and hands each
// decoded offer to fn. An offer that fails to decode is logged and skipped;
// a failed page read aborts.
func (c *Client) products(ctx context.Context, filters []types.Filter, fn func(pricelist.Offer)) error {
	paginator := pricing.NewGetProductsPaginator(c.pricing, &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCodeEC2),
		Filters:     filters,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("reading product page: %w", err)
		}
		for _, raw := range page.PriceList {
			offer, err := pricelist.DecodeOffer([]byte(raw))
			if err != nil {
				c.logger.Warn().Err(err).Msg("skipping undecodable offer")
				continue
			}
			fn(offer)
		}
	}
	return nil
}

// CapabilityProducts streams the capability sample used to seed the entity
// set. N. Virginia is assumed to carry every available instance type.
func (c *Client) CapabilityProducts(ctx context.Context, fn func(pricelist.Offer)) error {
	return c.products(ctx, []types.Filter{
		termMatch("location", "US East (N. Virginia)"),
	}, fn)
}

// PricingProducts streams the full on-demand/reserved pricing feed across
// all locations, restricted to plain shared-tenancy capacity.
func (c *Client) PricingProducts(ctx context.Context, fn func(pricelist.Offer)) error {
	return c.products(ctx, []types.Filter{
		termMatch("capacityStatus", "Used"),
		termMatch("tenancy", "Shared"),
		termMatch("licenseModel", "No License required"),
	}, fn)
}
