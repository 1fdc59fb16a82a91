package main

// ---------------------------------------------------------------------------
// cmd_schema.go — contract table creation (and optional database recreate)
// ---------------------------------------------------------------------------

import (
	"context"
	"flag"
	"fmt"

	"github.com/fraudsim-project/fraudsim/internal/core"
	"github.com/fraudsim-project/fraudsim/internal/warehouse"
)

func cmdSchema(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	recreate := fs.Bool("recreate", false, "Drop and recreate the database first (destructive)")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	log := core.NewLogger("schema", cfg.Logging)
	ctx := context.Background()

	if *recreate {
		warnf("dropping and recreating database %s", cfg.Warehouse.Database)
		if err := warehouse.RecreateDatabase(ctx, cfg.Warehouse); err != nil {
			errorf("%v", err)
		}
		fmt.Printf("%s Database %s recreated\n", green("✓"), cfg.Warehouse.Database)
	}

	wh, err := warehouse.Open(cfg.Warehouse, log)
	if err != nil {
		errorf("%v", err)
	}
	defer wh.Close()

	if err := wh.EnsureSchema(ctx); err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s Contract tables ensured\n", green("✓"))
}

func cmdViews(args []string) {
	fs := flag.NewFlagSet("views", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	log := core.NewLogger("views", cfg.Logging)

	wh, err := warehouse.Open(cfg.Warehouse, log)
	if err != nil {
		errorf("%v", err)
	}
	defer wh.Close()

	if err := wh.CreateCleanViews(context.Background()); err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s Clean schema and materialized views created\n", green("✓"))
}

func cmdRefresh(args []string) {
	fs := flag.NewFlagSet("refresh", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	log := core.NewLogger("refresh", cfg.Logging)

	wh, err := warehouse.Open(cfg.Warehouse, log)
	if err != nil {
		errorf("%v", err)
	}
	defer wh.Close()

	if err := wh.RefreshCleanViews(context.Background()); err != nil {
		errorf("%v", err)
	}
	fmt.Printf("%s All materialized views refreshed\n", green("✓"))
}
