package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"stock-fundamentals/src/config"
	datasource "stock-fundamentals/src/data_source"
	"stock-fundamentals/src/helpers"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/network"
	"stock-fundamentals/src/pipeline"
	"stock-fundamentals/src/storage"
	"stock-fundamentals/src/tracing"
)

const usage = `Usage:
  stock-fundamentals [-config path] [-env path] run <TICKER>
  stock-fundamentals init-config <PATH>

Flags:
`

// -----------------------------------------------------------------------------

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// -----------------------------------------------------------------------------

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("stock-fundamentals", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", config.DefaultConfigPath, "path to config file")
	envPath := flags.String("env", ".env", "optional dotenv file loaded before the config")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return helpers.ExitOK
		}
		return helpers.ExitUsageError
	}

	rest := flags.Args()
	if len(rest) != 2 {
		flags.Usage()
		return helpers.ExitUsageError
	}

	switch rest[0] {
	case "run":
		return report(stderr, runTicker(*configPath, *envPath, rest[1], stderr))
	case "init-config":
		return report(stderr, initConfig(rest[1], stdout))
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		flags.Usage()
		return helpers.ExitUsageError
	}
}

// -----------------------------------------------------------------------------

func report(stderr io.Writer, err error) int {
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return helpers.ExitCode(err)
}

// -----------------------------------------------------------------------------

func runTicker(configPath, envPath, ticker string, stderr io.Writer) error {
	if err := config.LoadEnvFile(envPath); err != nil {
		return err
	}

	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return err
	}

	base, err := logger.Init(logger.Options{Level: cfg.LogLevel})
	if err != nil {
		return helpers.NewConfigurationError("failed to init logger", err)
	}
	defer base.Sync()
	appLogger := logger.NewLogger(base, cfg.Name)

	if err := tracing.Init(cfg.Tracing.Enabled, stderr); err != nil {
		return helpers.NewConfigurationError("failed to init tracing", err)
	}
	defer tracing.Shutdown(context.Background())

	netMgr, err := network.NewNetworkManager(cfg.MConfig, appLogger.Named("Network"))
	if err != nil {
		return helpers.NewConfigurationError("failed to init network", err)
	}

	source, err := datasource.NewDataSource(cfg.MConfig, netMgr, appLogger.Named("Sources"))
	if err != nil {
		return helpers.NewConfigurationError("failed to select data source", err)
	}

	writer, err := storage.NewCSVRecordWriter(cfg.Output, cfg.Metrics, appLogger.Named("Storage"))
	if err != nil {
		return err
	}

	// Ctrl-C aborts the in-flight request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return pipeline.NewPipeline(source, writer, appLogger.Named("Pipeline")).Run(ctx, ticker)
}

// -----------------------------------------------------------------------------

// initConfig writes the default configuration to path.
func initConfig(path string, stdout io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		return helpers.NewConfigurationError(fmt.Sprintf("%s already exists", path), nil)
	}

	def := config.DefaultConfig()
	if err := (&config.Config{MConfig: &def}).Save(path); err != nil {
		return helpers.NewConfigurationError("failed to write default config", err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}
