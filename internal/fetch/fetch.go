// Package fetch wraps the upstream AWS APIs the catalog is built from: the
// instance type capability API, the Price List product feed, and the spot
// price history. Clients sit behind interfaces so tests can swap in mocks.
package fetch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/rs/zerolog"
)

// Both the pricing API and the capability sample live in us-east-1.
const homeRegion = "us-east-1"

// EC2API is the subset of the EC2 API the fetcher uses.
type EC2API interface {
	DescribeInstanceTypes(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error)
	DescribeSpotPriceHistory(ctx context.Context, params *ec2.DescribeSpotPriceHistoryInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSpotPriceHistoryOutput, error)
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeInstanceTypeOfferings(ctx context.Context, params *ec2.DescribeInstanceTypeOfferingsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypeOfferingsOutput, error)
}

// PricingAPI is the subset of the Price List API the fetcher uses.
type PricingAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Client bundles the upstream API clients for one run.
type Client struct {
	ec2     EC2API
	pricing PricingAPI
	// regional returns an EC2 client bound to the given region;
	// spot price history must be read from each region's own endpoint.
	regional func(region string) EC2API
	logger   zerolog.Logger
}

// New builds a Client from an AWS configuration.
func New(cfg aws.Config, logger zerolog.Logger) *Client {
	home := func(o *ec2.Options) { o.Region = homeRegion }
	return &Client{
		ec2:     ec2.NewFromConfig(cfg, home),
		pricing: pricing.NewFromConfig(cfg, func(o *pricing.Options) { o.Region = homeRegion }),
		regional: func(region string) EC2API {
			return ec2.NewFromConfig(cfg, func(o *ec2.Options) { o.Region = region })
		},
		logger: logger,
	}
}

// SetEC2API replaces the home-region EC2 client (for testing).
func (c *Client) SetEC2API(api EC2API) { c.ec2 = api }

// SetPricingAPI replaces the Price List client (for testing).
func (c *Client) SetPricingAPI(api PricingAPI) { c.pricing = api }

// SetRegionalFactory replaces the per-region EC2 client factory (for testing).
func (c *Client) SetRegionalFactory(f func(region string) EC2API) { c.regional = f }
