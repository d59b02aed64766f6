// Command ec2catalog builds the merged instance type catalog: capability
// data joined with on-demand, reserved and spot pricing per region and
// platform, written out as one JSON document.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finoptic/ec2catalog/internal/catalog"
	"github.com/finoptic/ec2catalog/internal/fetch"
	"github.com/finoptic/ec2catalog/internal/instance"
	"github.com/finoptic/ec2catalog/internal/merge"
	"github.com/finoptic/ec2catalog/internal/pricelist"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	output := flag.String("output", "", "output path for the catalog JSON (\"-\" for stdout)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ec2catalog: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Output = *output
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	logger = logger.With().Str("run_id", uuid.NewString()).Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading AWS configuration: %w", err)
	}
	client := fetch.New(awsCfg, logger)

	// Detailed capability records; authoritative where present.
	details, err := client.InstanceTypeDetails(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("count", len(details)).Msg("fetched instance type details")

	// Seed the entity map from the capability sample.
	seeder := instance.NewSeeder(details, logger)
	if err := client.CapabilityProducts(ctx, seeder.Add); err != nil {
		return fmt.Errorf("enumerating capability catalog: %w", err)
	}
	entities := seeder.Instances()
	logger.Info().Int("count", len(entities)).
		Str("instance_types", strings.Join(seeder.TypeCodes(), ", ")).
		Msg("seeded instance entities")

	resolver, err := regionResolver(cfg)
	if err != nil {
		return err
	}

	engine := merge.NewEngine(catalog.NewTranslator(), resolver, logger)
	if err := client.PricingProducts(ctx, func(offer pricelist.Offer) {
		engine.MergeProduct(entities, offer)
	}); err != nil {
		return fmt.Errorf("enumerating pricing feed: %w", err)
	}

	if !cfg.SkipSpot {
		if err := engine.MergeSpotRegions(ctx, entities, client); err != nil {
			return err
		}
	}

	diags := engine.Diagnostics()
	logger.Info().
		Int("unknown_locations", diags.UnknownLocations).
		Int("unknown_instances", diags.UnknownInstances).
		Int("record_errors", len(diags.RecordErrors)).
		Strs("skipped_spot_regions", diags.SkippedSpotRegions).
		Msg("merge complete")

	return writeCatalog(cfg.Output, entities)
}

func regionResolver(cfg Config) (*catalog.RegionResolver, error) {
	if cfg.EndpointsFile == "" {
		return catalog.DefaultRegionResolver()
	}
	f, err := os.Open(cfg.EndpointsFile)
	if err != nil {
		return nil, fmt.Errorf("opening endpoints catalog: %w", err)
	}
	defer f.Close()
	descriptions, err := catalog.ParseEndpoints(f)
	if err != nil {
		return nil, err
	}
	return catalog.NewRegionResolver(descriptions), nil
}

func writeCatalog(path string, entities map[string]*instance.InstanceType) error {
	raw, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	raw = append(raw, '\n')
	if path == "-" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
