package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// configFile is the default config filename looked up in the working
// directory when --config is not given.
const configFile = "relmap.toml"

// config holds the file-configurable settings. Precedence is
// flag > file > default: commands only apply a config value when its flag
// was left at the default.
type config struct {
	// OutDir is where export artifacts are written. Defaults to the
	// working directory.
	OutDir string `toml:"out_dir"`

	// Formats is the default export format list for the export command.
	Formats []string `toml:"formats"`

	// ExclusivePairs makes undirected edge insertion reject a second edge
	// between an already-connected endpoint pair even when the type label
	// differs.
	ExclusivePairs bool `toml:"exclusive_pairs"`

	// ListenAddr is the bind address for the serve command.
	ListenAddr string `toml:"listen_addr"`
}

func defaultConfig() config {
	return config{
		OutDir:     ".",
		Formats:    []string{"csv", "svg"},
		ListenAddr: "localhost:8080",
	}
}

// loadConfig reads a TOML config file and merges it over the defaults.
// With an explicit path the file must exist; the implicit ./relmap.toml is
// optional and silently skipped when absent.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = configFile
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var file config
	if _, err := toml.Decode(string(raw), &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.OutDir != "" {
		cfg.OutDir = file.OutDir
	}
	if len(file.Formats) > 0 {
		cfg.Formats = file.Formats
	}
	if file.ListenAddr != "" {
		cfg.ListenAddr = file.ListenAddr
	}
	cfg.ExclusivePairs = file.ExclusivePairs
	return cfg, nil
}
