package fetch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/finoptic/ec2catalog/internal/merge"
)

// SpotPrices returns the current spot observations for the given instance
// types in one region. It implements merge.SpotSource; errors are returned
// to the engine, which skips the region.
func (c *Client) SpotPrices(ctx context.Context, region string, instanceTypes []string) ([]merge.SpotPrice, error) {
	sdkTypes := make([]types.InstanceType, 0, len(instanceTypes))
	for _, code := range instanceTypes {
		sdkTypes = append(sdkTypes, types.InstanceType(code))
	}

	client := c.regional(region)
	paginator := ec2.NewDescribeSpotPriceHistoryPaginator(client, &ec2.DescribeSpotPriceHistoryInput{
		InstanceTypes: sdkTypes,
		StartTime:     aws.Time(time.Now()),
	})

	var prices []merge.SpotPrice
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range page.SpotPriceHistory {
			prices = append(prices, merge.SpotPrice{
				InstanceType:       string(p.InstanceType),
				AvailabilityZone:   aws.ToString(p.AvailabilityZone),
				ProductDescription: string(p.ProductDescription),
				Price:              aws.ToString(p.SpotPrice),
			})
		}
	}
	return prices, nil
}

// InstanceTypeOfferings lists which instance types a region offers at the
// given location granularity ("region", "availability-zone" or
// "availability-zone-id"). Provider-side errors yield an empty list, the
// same skip treatment the spot feed gets.
func (c *Client) InstanceTypeOfferings(ctx context.Context, region, locationType string) ([]string, error) {
	client := c.regional(region)
	paginator := ec2.NewDescribeInstanceTypeOfferingsPaginator(client, &ec2.DescribeInstanceTypeOfferingsInput{
		LocationType: types.LocationType(locationType),
	})

	var offerings []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Debug().Str("region", region).Err(err).Msg("skipping instance type offerings for region")
			return nil, nil
		}
		for _, offering := range page.InstanceTypeOfferings {
			offerings = append(offerings, string(offering.InstanceType))
		}
	}
	return offerings, nil
}
