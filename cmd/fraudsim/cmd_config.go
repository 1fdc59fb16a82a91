package main

// ---------------------------------------------------------------------------
// cmd_config.go — show effective config or write a default file
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fraudsim-project/fraudsim/internal/core"
)

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	initFlag := fs.Bool("init", false, "Write a default config file instead of printing")
	fs.Parse(args)

	path := envConfig(*configPath)

	if *initFlag {
		if _, err := os.Stat(path); err == nil {
			errorf("refusing to overwrite existing config at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			errorf("creating config dir: %v", err)
		}
		if err := core.SaveConfig(core.DefaultConfig(), path); err != nil {
			errorf("%v", err)
		}
		fmt.Printf("%s Default config written to %s\n", green("✓"), path)
		return
	}

	cfg, err := core.LoadConfig(path)
	if err != nil {
		errorf("loading config: %v", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		errorf("marshaling config: %v", err)
	}
	os.Stdout.Write(data)
}
