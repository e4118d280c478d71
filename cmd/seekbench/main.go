package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgPath  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "seekbench",
		Short: "Benchmark search algorithms over large sorted datasets",
		Long: `seekbench generates a sorted random integer array, runs linear,
binary, jump and interpolation search against fixed query classes, and
records per-run timing and resident-memory telemetry to a durable CSV
sink.`,
		SilenceUsage: true,
	}
)

// fileConfig mirrors the optional YAML config file. Flags override file
// values.
type fileConfig struct {
	Size    int    `yaml:"size" validate:"omitempty,gt=0"`
	Min     int32  `yaml:"min"`
	Max     int32  `yaml:"max"`
	Seed    int64  `yaml:"seed"`
	Metrics string `yaml:"metrics"`

	Archive struct {
		Backend  string `yaml:"backend" validate:"omitempty,oneof=s3 minio"`
		Bucket   string `yaml:"bucket"`
		Prefix   string `yaml:"prefix"`
		Endpoint string `yaml:"endpoint"` // minio only
		Table    string `yaml:"table"`    // dynamodb run manifests
	} `yaml:"archive"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
}
