// config.go: optional ari.yaml loading.
//
// The CLI looks for an ari.yaml next to the script (or in the working
// directory for the REPL). A missing file is not an error; it just means
// defaults. Example:
//
//	parallel_threshold: 8192
//	workers: 4
//	history_file: ~/.ari_history
package ari

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of ari.yaml.
type fileConfig struct {
	ParallelThreshold int    `yaml:"parallel_threshold"`
	Workers           int    `yaml:"workers"`
	HistoryFile       string `yaml:"history_file"`
}

// LoadConfig reads an ari.yaml from path. When the file does not exist the
// defaults are returned with no error; a malformed file is an error. The
// second return value is the configured REPL history path ("" when unset).
func LoadConfig(path string) (Config, string, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, "", nil
		}
		return cfg, "", fmt.Errorf("reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, "", fmt.Errorf("parsing %s: %w", path, err)
	}
	if fc.ParallelThreshold > 0 {
		cfg.ParallelThreshold = fc.ParallelThreshold
	}
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	return cfg, fc.HistoryFile, nil
}
