package main

// ---------------------------------------------------------------------------
// cmd_check.go — pre-flight diagnostics
// ---------------------------------------------------------------------------

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fraudsim-project/fraudsim/internal/core"
	"github.com/fraudsim-project/fraudsim/internal/enrich"
	"github.com/fraudsim-project/fraudsim/internal/warehouse"
)

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	format := fs.String("format", "table", "Output format: table, json")
	skipDB := fs.Bool("skip-db", false, "Skip the warehouse connectivity check")
	fs.Parse(args)

	outFmt := parseFormat(*format)

	type checkResult struct {
		Name   string `json:"name"`
		Status string `json:"status"`
		Detail string `json:"detail,omitempty"`
	}

	results := make([]checkResult, 0)
	pass := func(name, detail string) { results = append(results, checkResult{name, "pass", detail}) }
	fail := func(name, detail string) { results = append(results, checkResult{name, "fail", detail}) }

	cfg, err := core.LoadConfig(envConfig(*configPath))
	if err != nil {
		fail("config", fmt.Sprintf("failed to load %s: %v", *configPath, err))
	} else {
		pass("config", fmt.Sprintf("loaded %s", *configPath))
	}

	if cfg != nil {
		if _, err := enrich.ReadRecords(cfg.Pipeline.InputPath); err != nil {
			switch {
			case errors.Is(err, enrich.ErrSchemaMismatch):
				fail("input_schema", err.Error())
			case errors.Is(err, enrich.ErrMissingInput):
				fail("input_file", err.Error())
			default:
				fail("input_file", err.Error())
			}
		} else {
			pass("input_file", fmt.Sprintf("%s readable with required columns", cfg.Pipeline.InputPath))
		}

		if *skipDB {
			pass("warehouse", "skipped")
		} else {
			log := core.NewLogger("check", cfg.Logging)
			wh, err := warehouse.Open(cfg.Warehouse, log)
			if err != nil {
				fail("warehouse", err.Error())
			} else {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := wh.Ping(ctx); err != nil {
					fail("warehouse", err.Error())
				} else {
					pass("warehouse", fmt.Sprintf("%s@%s:%s/%s reachable",
						cfg.Warehouse.User, cfg.Warehouse.Host, cfg.Warehouse.Port, cfg.Warehouse.Database))
				}
				cancel()
				wh.Close()
			}
		}
	}

	if outFmt == FormatJSON {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"checks": results,
			"total":  len(results),
		}, "", "  ")
		fmt.Println(string(data))
		for _, r := range results {
			if r.Status == "fail" {
				os.Exit(1)
			}
		}
		return
	}

	tbl := NewTable(os.Stdout, "CHECK", "STATUS", "DETAIL")
	failures := 0
	for _, r := range results {
		statusStr := green("PASS")
		if r.Status == "fail" {
			statusStr = red("FAIL")
			failures++
		}
		tbl.AddRow(r.Name, statusStr, r.Detail)
	}
	tbl.Render()

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%s %d check(s) failed.\n", red("✗"), failures)
		os.Exit(1)
	}
	fmt.Printf("%s All checks passed.\n", green("✓"))
}
