package main

// ---------------------------------------------------------------------------
// cmd_load.go — bulk-load the warehouse contract tables
// ---------------------------------------------------------------------------

import (
	"context"
	"flag"
	"fmt"

	"github.com/fraudsim-project/fraudsim/internal/core"
	"github.com/fraudsim-project/fraudsim/internal/warehouse"
)

func cmdLoad(args []string) {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	input := fs.String("input", "", "Raw click CSV override")
	ads := fs.Int("ads", 10, "Number of synthetic ads")
	days := fs.Int("days", 30, "Days of ad performance history")
	connections := fs.Int("connections", 500, "Number of ad_connections rows")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	if *input != "" {
		cfg.Pipeline.InputPath = *input
	}
	log := core.NewLogger("load", cfg.Logging)
	ctx := context.Background()

	wh, err := warehouse.Open(cfg.Warehouse, log)
	if err != nil {
		errorf("%v", err)
	}
	defer wh.Close()

	loader := warehouse.NewLoader(wh, cfg.Simulation.Seed)

	adIDs, err := loader.LoadAds(ctx, *ads)
	if err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s %d ads\n", green("✓"), len(adIDs))

	clicks, err := loader.LoadClicks(ctx, cfg.Pipeline.InputPath, adIDs)
	if err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s %d raw clicks (from %s)\n", green("✓"), clicks, cfg.Pipeline.InputPath)

	perf, err := loader.LoadPerformance(ctx, adIDs, *days)
	if err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s %d ad performance rows\n", green("✓"), perf)

	conns, err := loader.LoadConnections(ctx, adIDs, *connections)
	if err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s %d ad connections\n", green("✓"), conns)
}
