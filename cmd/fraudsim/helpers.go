package main

// ---------------------------------------------------------------------------
// helpers.go — TTY detection, color, error helpers, env-based config
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"
	"strings"
)

// ---------------------------------------------------------------------------
// TTY / color helpers
// ---------------------------------------------------------------------------

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY(os.Stderr)
}

func ansi(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return code + s + "\033[0m"
}

func red(s string) string    { return ansi("\033[91m", s) }
func yellow(s string) string { return ansi("\033[93m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func cyan(s string) string   { return ansi("\033[36m", s) }
func dim(s string) string    { return ansi("\033[90m", s) }
func bold(s string) string   { return ansi("\033[1m", s) }

// ---------------------------------------------------------------------------
// Error / warn helpers (always to stderr)
// ---------------------------------------------------------------------------

func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, red("error: ")+format+"\n", args...)
	os.Exit(1)
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, yellow("warn: ")+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Env-based configuration
//
// Environment variables:
//   FRAUDSIM_CONFIG — default config file path
//   FRAUDSIM_INPUT  — input CSV override (alias: KAGGLE_FILE)
//   FRAUDSIM_OUTPUT — output CSV override
//   DB_* / PG*      — warehouse connection settings
// ---------------------------------------------------------------------------

const defaultConfigPath = "configs/default.yaml"

// envConfig returns the config path, preferring flag > env > default.
func envConfig(flagVal string) string {
	if flagVal != "" && flagVal != defaultConfigPath {
		return flagVal
	}
	if e := os.Getenv("FRAUDSIM_CONFIG"); e != "" {
		return e
	}
	return flagVal
}

// ---------------------------------------------------------------------------
// hasFlag checks if any of the given flags appear in args.
// ---------------------------------------------------------------------------

func hasFlag(args []string, flags ...string) bool {
	for _, a := range args {
		for _, f := range flags {
			if a == f {
				return true
			}
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Suggest — typo correction for unknown commands
// ---------------------------------------------------------------------------

func suggest(input string) string {
	cmds := []string{"enrich", "check", "schema", "load", "views", "refresh",
		"query", "run", "config", "version", "help"}
	input = strings.ToLower(input)
	for _, c := range cmds {
		if strings.HasPrefix(c, input) || strings.HasPrefix(input, c) {
			return c
		}
	}
	for _, c := range cmds {
		if len(c) == len(input) {
			diff := 0
			for i := range c {
				if c[i] != input[i] {
					diff++
				}
			}
			if diff <= 1 {
				return c
			}
		}
	}
	return ""
}
