package main

// ---------------------------------------------------------------------------
// main.go — command dispatcher for the fraudsim CLI
//
// This file is intentionally slim. All command implementations live in
// their own files (cmd_*.go). Shared helpers are in helpers.go, output.go,
// and usage.go.
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"
)

var (
	version   = "1.0.0"
	commit    = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--version", "-V":
			printVersion(os.Stdout)
			os.Exit(0)
		case "--help", "-h", "help":
			if len(os.Args) >= 3 {
				cmdHelp(os.Args[2])
			} else {
				printUsage(os.Stdout)
			}
			os.Exit(0)
		}
	}

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	subcmd := os.Args[1]
	args := os.Args[2:]

	// Handle -h / --help appended to any subcommand
	for _, a := range args {
		if a == "-h" || a == "--help" {
			cmdHelp(subcmd)
			os.Exit(0)
		}
	}

	switch subcmd {
	case "enrich":
		cmdEnrich(args)
	case "check":
		cmdCheck(args)
	case "schema":
		cmdSchema(args)
	case "load":
		cmdLoad(args)
	case "views":
		cmdViews(args)
	case "refresh":
		cmdRefresh(args)
	case "query":
		cmdQuery(args)
	case "run":
		cmdRun(args)
	case "config":
		cmdConfig(args)
	case "version":
		printVersion(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, red("error: ")+"unknown command %q\n\n", subcmd)
		if s := suggest(subcmd); s != "" {
			fmt.Fprintf(os.Stderr, "       Did you mean %s?\n\n", bold(s))
		}
		printUsage(os.Stderr)
		os.Exit(1)
	}
}
