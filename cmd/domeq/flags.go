package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath   string
	LogLevel     string
	LogFormat    string
	Debug        bool
	OutputFormat string
	OutputDir    string
	MetricsPort  int
	ShowVersion  bool
	ShowHelp     bool
	Validate     bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("DOMEQ_CONFIG", "model.yaml"),
		"Path to model configuration file (env: DOMEQ_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("DOMEQ_CONFIG", "model.yaml"),
		"Path to model configuration file (env: DOMEQ_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("DOMEQ_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: DOMEQ_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("DOMEQ_LOG_FORMAT", "json"),
		"Log format: json, text (env: DOMEQ_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("DOMEQ_DEBUG", false),
		"Enable debug mode (env: DOMEQ_DEBUG)")

	flag.StringVar(&cfg.OutputFormat, "format",
		getEnv("DOMEQ_FORMAT", ""),
		"Output format override: records, interfaces, proto (env: DOMEQ_FORMAT)")

	flag.StringVar(&cfg.OutputDir, "out",
		getEnv("DOMEQ_OUT", ""),
		"Output directory override, empty writes to stdout (env: DOMEQ_OUT)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("DOMEQ_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: DOMEQ_METRICS_PORT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate model configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate config file exists
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Validate output format override
	if cfg.OutputFormat != "" {
		validOutputs := []string{"records", "interfaces", "proto"}
		if !contains(validOutputs, cfg.OutputFormat) {
			return fmt.Errorf("invalid output format: %s", cfg.OutputFormat)
		}
	}

	// Validate metrics port
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Domain Equation Code Generation

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Generate registry records from a model
  %s --config=/path/to/model.yaml

  # Generate proto2 files into a directory
  %s --format=proto --out=./gen

  # Run with environment variables
  export DOMEQ_CONFIG=/etc/domeq/model.yaml
  export DOMEQ_LOG_LEVEL=debug
  %s

  # Validate the model only
  %s --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
