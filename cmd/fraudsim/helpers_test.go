package main

import "testing"

// ─── suggest ──────────────────────────────────────────────────────────────────

func TestSuggest(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"enricj", "enrich"}, // one substitution
		{"enr", "enrich"},    // prefix
		{"queryy", "query"},  // input extends a command
		{"shcema", ""},       // transposition is two substitutions away
		{"LOAD", "load"},     // case-folded
		{"zzzzzz", ""},
	}
	for _, tc := range cases {
		if got := suggest(tc.in); got != tc.want {
			t.Errorf("suggest(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// ─── hasFlag ──────────────────────────────────────────────────────────────────

func TestHasFlag(t *testing.T) {
	args := []string{"-config", "x.yaml", "--json"}
	if !hasFlag(args, "--json", "-json") {
		t.Error("hasFlag should find --json")
	}
	if hasFlag(args, "-format") {
		t.Error("hasFlag found a flag that is not present")
	}
}

// ─── envConfig ────────────────────────────────────────────────────────────────

func TestEnvConfig(t *testing.T) {
	t.Setenv("FRAUDSIM_CONFIG", "")
	if got := envConfig("custom.yaml"); got != "custom.yaml" {
		t.Errorf("explicit flag should win, got %q", got)
	}

	t.Setenv("FRAUDSIM_CONFIG", "/etc/fraudsim.yaml")
	if got := envConfig(defaultConfigPath); got != "/etc/fraudsim.yaml" {
		t.Errorf("env should override the default path, got %q", got)
	}
	if got := envConfig("custom.yaml"); got != "custom.yaml" {
		t.Errorf("explicit flag should still win over env, got %q", got)
	}
}
