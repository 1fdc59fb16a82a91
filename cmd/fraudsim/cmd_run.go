package main

// ---------------------------------------------------------------------------
// cmd_run.go — full data-movement pipeline orchestration
// ---------------------------------------------------------------------------

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fraudsim-project/fraudsim/internal/core"
	"github.com/fraudsim-project/fraudsim/internal/enrich"
	"github.com/fraudsim-project/fraudsim/internal/warehouse"
)

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	withEnrich := fs.Bool("with-enrich", false, "Run the enrichment pass before loading")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	log := core.NewLogger("run", cfg.Logging).With().
		Str("run_id", uuid.NewString()).Logger()
	ctx := context.Background()

	step := func(name string) { fmt.Printf("%s %s\n", cyan("▶"), name) }

	if *withEnrich {
		step("enrich")
		sum, err := enrich.New(cfg, log).Run()
		if err != nil {
			errorf("enrich: %v", err)
		}
		fmt.Printf("  %d rows, %d fraud rows in %d clusters\n", sum.Rows, sum.FraudRows, sum.Clusters)
	}

	step("check warehouse connection")
	wh, err := warehouse.Open(cfg.Warehouse, log)
	if err != nil {
		errorf("%v", err)
	}
	defer wh.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = wh.Ping(pingCtx)
	cancel()
	if err != nil {
		errorf("%v", err)
	}

	step("create contract tables")
	if err := wh.EnsureSchema(ctx); err != nil {
		errorf("%v", err)
	}

	step("bulk load")
	loader := warehouse.NewLoader(wh, cfg.Simulation.Seed)
	adIDs, err := loader.LoadAds(ctx, 10)
	if err != nil {
		errorf("%v", err)
	}
	if _, err := loader.LoadClicks(ctx, cfg.Pipeline.InputPath, adIDs); err != nil {
		errorf("%v", err)
	}
	if _, err := loader.LoadPerformance(ctx, adIDs, 30); err != nil {
		errorf("%v", err)
	}
	if _, err := loader.LoadConnections(ctx, adIDs, 500); err != nil {
		errorf("%v", err)
	}

	step("create clean views")
	if err := wh.CreateCleanViews(ctx); err != nil {
		errorf("%v", err)
	}

	step("refresh clean views")
	if err := wh.RefreshCleanViews(ctx); err != nil {
		errorf("%v", err)
	}

	fmt.Printf("\n%s All steps completed.\n", green("✓"))
}
