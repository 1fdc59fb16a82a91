package main

// ---------------------------------------------------------------------------
// cmd_query.go — fraud summary query runner
// ---------------------------------------------------------------------------

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fraudsim-project/fraudsim/internal/core"
	"github.com/fraudsim-project/fraudsim/internal/warehouse"
)

func cmdQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	file := fs.String("file", "", "SQL file to execute instead of the built-in query")
	format := fs.String("format", "table", "Output format: table, csv")
	output := fs.String("output", "", "Write output to file (default: stdout)")
	fs.Parse(args)

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	log := core.NewLogger("query", cfg.Logging)

	wh, err := warehouse.Open(cfg.Warehouse, log)
	if err != nil {
		errorf("%v", err)
	}
	defer wh.Close()

	ctx := context.Background()
	var res *warehouse.QueryResult
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			errorf("reading query file: %v", err)
		}
		res, err = wh.RunQuery(ctx, string(data))
		if err != nil {
			errorf("%v", err)
		}
	} else {
		res, err = wh.FraudSummary(ctx)
		if err != nil {
			errorf("%v", err)
		}
	}

	w, cleanup := outputWriter(*output)
	defer cleanup()

	switch parseFormat(*format) {
	case FormatCSV:
		writeCSV(w, res.Columns, res.Rows)
	default:
		tbl := NewTable(w, res.Columns...)
		for _, row := range res.Rows {
			tbl.AddRow(row...)
		}
		tbl.Render()
	}

	if *output != "" {
		fmt.Fprintf(os.Stderr, "%s %d rows written to %s\n", green("✓"), len(res.Rows), *output)
	}
}
