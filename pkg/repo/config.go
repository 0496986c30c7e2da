package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBranchName is used when no config file overrides it.
const DefaultBranchName = "master"

// Config is the repository configuration stored at .bgit/config.toml.
type Config struct {
	DefaultBranch string `toml:"default_branch"`
}

func defaultConfig() Config {
	return Config{DefaultBranch: DefaultBranchName}
}

// loadConfig reads .bgit/config.toml. A missing file yields the default
// configuration; a present but unparseable file is an error.
func loadConfig(bgitDir string) (Config, error) {
	cfg := defaultConfig()
	path := filepath.Join(bgitDir, "config.toml")

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.DefaultBranch == "" {
		cfg.DefaultBranch = DefaultBranchName
	}
	return cfg, nil
}

// writeConfig writes the configuration to .bgit/config.toml.
func writeConfig(bgitDir string, cfg Config) error {
	f, err := os.Create(filepath.Join(bgitDir, "config.toml"))
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
