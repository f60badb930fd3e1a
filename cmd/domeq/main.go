// Package main implements the entry point for the domeq tool. It loads a
// declarative model of domain equations, evaluates them into a property
// graph, and renders the registered types as JSON records, Go interface
// declarations, or proto2 message definitions.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/domainequations/config"
	"github.com/c360/domainequations/generator"
	"github.com/c360/domainequations/graph"
	"github.com/c360/domainequations/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "domeq"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Generation failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	modelCfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Model configuration is valid",
			"leaves", len(modelCfg.Leaves),
			"equations", len(modelCfg.Equations))
		return nil
	}

	metricsRegistry := metric.NewMetricsRegistry()
	if cliCfg.MetricsPort > 0 {
		startMetricsServer(cliCfg.MetricsPort, metricsRegistry, logger)
	}

	g := graph.New(
		graph.WithLogger(logger),
		graph.WithMetrics(metricsRegistry.CoreMetrics()),
	)

	terms, err := config.BuildTerms(modelCfg)
	if err != nil {
		return err
	}
	for _, term := range terms {
		if err := g.Evaluate(term); err != nil {
			return err
		}
	}

	slog.Info("Model evaluated",
		"graph_id", g.ID(),
		"equations", len(terms),
		"properties", len(g.Properties()))

	return render(cliCfg, modelCfg, g)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting domeq (domain equation generation)",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// startMetricsServer exposes the Prometheus registry in the background.
func startMetricsServer(port int, registry *metric.MetricsRegistry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		registry.PrometheusRegistry(),
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Info("Metrics server listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics server stopped", "error", err)
		}
	}()
}

// render writes the requested artifact. The CLI format flag overrides the
// model's own output section; records is the default.
func render(cliCfg *CLIConfig, modelCfg *config.ModelConfig, g *graph.PropertyGraph) error {
	format := modelCfg.Output.Format
	if cliCfg.OutputFormat != "" {
		format = cliCfg.OutputFormat
	}
	if format == "" {
		format = config.FormatRecords
	}

	dir := modelCfg.Output.Dir
	if cliCfg.OutputDir != "" {
		dir = cliCfg.OutputDir
	}

	switch format {
	case config.FormatRecords:
		return writeArtifact(dir, "records.json", generator.RenderRecords(g))

	case config.FormatInterfaces:
		content, err := generator.NewInterfaceGenerator(g).RenderAll()
		if err != nil {
			return err
		}
		return writeArtifact(dir, "interfaces.go.txt", content)

	case config.FormatProto:
		files, err := generator.NewProtobufGenerator(g).RenderAll()
		if err != nil {
			return err
		}
		for name, content := range files {
			if err := writeArtifact(dir, name, content); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// writeArtifact writes one rendered file, or prints it when no directory is
// configured.
func writeArtifact(dir, name, content string) error {
	if dir == "" {
		fmt.Println(content)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	slog.Info("Artifact written", "path", path)
	return nil
}
