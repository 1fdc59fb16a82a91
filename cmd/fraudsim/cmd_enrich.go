package main

// ---------------------------------------------------------------------------
// cmd_enrich.go — the core enrichment run
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/fraudsim-project/fraudsim/internal/core"
	"github.com/fraudsim-project/fraudsim/internal/enrich"
)

func cmdEnrich(args []string) {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	input := fs.String("input", "", "Input CSV override")
	output := fs.String("output", "", "Output CSV override")
	seed := fs.Int64("seed", 0, "Random seed override (0 = use config)")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	if *input != "" {
		cfg.Pipeline.InputPath = *input
	}
	if *output != "" {
		cfg.Pipeline.OutputPath = *output
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	log := core.NewLogger("enrich", cfg.Logging).With().
		Str("run_id", uuid.NewString()).Logger()

	sum, err := enrich.New(cfg, log).Run()
	if err != nil {
		errorf("%v", err)
	}

	fmt.Printf("%s Enriched %d rows → %s\n", green("✓"), sum.Rows, cfg.Pipeline.OutputPath)
	fmt.Printf("  distinct IPs: %d   hub IPs: %d   clusters: %d\n",
		sum.DistinctIPs, sum.HubIPs, sum.Clusters)
	fmt.Printf("  fraud rows: %d   geo-noised rows: %d\n", sum.FraudRows, sum.GeoNoised)
	if sum.FraudRows == 0 {
		fmt.Printf("  %s\n", dim("no fraud rows — hub set was empty or hub IPs never appear in the log"))
	}
}
