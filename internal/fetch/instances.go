package fetch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/finoptic/ec2catalog/internal/instance"
)

// InstanceTypeDetails pages through the capability API and returns the
// detailed capability record per type code. Failure here is fatal for the
// run: without the capability catalog there is no entity set to enrich.
func (c *Client) InstanceTypeDetails(ctx context.Context) (map[string]*instance.TypeDetails, error) {
	details := make(map[string]*instance.TypeDetails)

	paginator := ec2.NewDescribeInstanceTypesPaginator(c.ec2, &ec2.DescribeInstanceTypesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing instance types (check IAM permissions): %w", err)
		}
		for _, info := range page.InstanceTypes {
			d := &instance.TypeDetails{}
			if info.ProcessorInfo != nil {
				for _, arch := range info.ProcessorInfo.SupportedArchitectures {
					d.Architectures = append(d.Architectures, string(arch))
				}
			}
			if info.NetworkInfo != nil {
				d.NetworkPerformance = aws.ToString(info.NetworkInfo.NetworkPerformance)
				d.ENARequired = info.NetworkInfo.EnaSupport == "required"
				d.MaxENIs = int(aws.ToInt32(info.NetworkInfo.MaximumNetworkInterfaces))
				d.IPsPerENI = int(aws.ToInt32(info.NetworkInfo.Ipv4AddressesPerInterface))
			}
			if info.FpgaInfo != nil {
				for _, fpga := range info.FpgaInfo.Fpgas {
					d.FPGACount += int(aws.ToInt32(fpga.Count))
				}
			}
			details[string(info.InstanceType)] = d
		}
	}
	return details, nil
}

// Regions enumerates all region codes, including opt-in regions.
func (c *Client) Regions(ctx context.Context) ([]string, error) {
	out, err := c.ec2.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("describing regions: %w", err)
	}
	regions := make([]string, 0, len(out.Regions))
	for _, region := range out.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	return regions, nil
}
