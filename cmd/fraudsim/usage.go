package main

// ---------------------------------------------------------------------------
// usage.go — usage text, per-command help, version banner
// ---------------------------------------------------------------------------

import (
	"fmt"
	"io"
	"os"
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "fraudsim %s (commit %s, built %s)\n", version, commit, buildDate)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `%s — synthetic fraud-ring enrichment for ad-click logs

Usage:
  fraudsim <command> [flags]

Core:
  enrich      Enrich the raw click log with identities and fraud rings
  check       Pre-flight diagnostics (input file, warehouse connection)

Warehouse (data movement):
  schema      Create the contract tables (ads, raw_clicks, ...)
  load        Bulk-load ads, clicks, performance and connection rows
  views       Create the clean schema and its materialized views
  refresh     Refresh the clean materialized views
  query       Run the fraud summary query (or a SQL file)
  run         Orchestrate check → schema → load → views → refresh

Other:
  config      Show the effective configuration, or --init a default file
  version     Print version information
  help        Show help for a command

Use "fraudsim help <command>" for command flags.
`, bold("fraudsim"))
}

var helpTexts = map[string]string{
	"enrich": `Usage: fraudsim enrich [flags]

Reads the raw click log, applies baseline identity enrichment to every
row, injects synthetic fraud rings over a hub subset of source IPs, and
writes the enriched CSV. The same seed and input always reproduce the
output byte for byte.

Flags:
  -config path   Config file (default configs/default.yaml)
  -input path    Input CSV override
  -output path   Output CSV override
  -seed n        Random seed override
`,
	"check": `Usage: fraudsim check [flags]

Runs pre-flight diagnostics: config loads, input file exists and has the
required columns, warehouse is reachable.

Flags:
  -config path   Config file
  -format f      Output format: table, json
  -skip-db       Skip the warehouse connectivity check
`,
	"schema": `Usage: fraudsim schema [flags]

Creates the contract tables if they do not exist.

Flags:
  -config path   Config file
  -recreate      Drop and recreate the whole database first (destructive)
`,
	"load": `Usage: fraudsim load [flags]

Bulk-loads the warehouse: synthetic ads, the raw click log (with
controlled imperfections), daily ad performance, and connection rows.

Flags:
  -config path   Config file
  -input path    Raw click CSV override
  -ads n         Number of synthetic ads (default 10)
  -days n        Days of ad performance history (default 30)
  -connections n Number of ad_connections rows (default 500)
`,
	"views": `Usage: fraudsim views [flags]

Creates (or rebuilds) the clean schema and its materialized views.

Flags:
  -config path   Config file
`,
	"refresh": `Usage: fraudsim refresh [flags]

Refreshes every clean materialized view in dependency order.

Flags:
  -config path   Config file
`,
	"query": `Usage: fraudsim query [flags]

Runs the built-in fraud summary query, or a SQL file, against the
warehouse and renders the result.

Flags:
  -config path   Config file
  -file path     SQL file to execute instead of the built-in query
  -format f      Output format: table, csv
  -output path   Write output to file (default: stdout)
`,
	"run": `Usage: fraudsim run [flags]

Orchestrates the full data-movement pipeline: connection check, table
creation, bulk load, clean views, refresh. Pass --with-enrich to run the
enrichment pass first and feed its input file to the loader.

Flags:
  -config path   Config file
  -with-enrich   Run the enrichment pass before loading
`,
	"config": `Usage: fraudsim config [flags]

Prints the effective configuration as YAML.

Flags:
  -config path   Config file
  -init          Write a default config file instead of printing
`,
}

func cmdHelp(name string) {
	if text, ok := helpTexts[name]; ok {
		fmt.Print(text)
		return
	}
	fmt.Fprintf(os.Stderr, "no help for %q\n\n", name)
	printUsage(os.Stderr)
}
