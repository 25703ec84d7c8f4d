package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/weather-fetch/internal/application"
	"github.com/eugenenazirov/weather-fetch/internal/config"
	"github.com/eugenenazirov/weather-fetch/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	overrides, err := parseFlags(os.Args[1:])
	kingpin.FatalIfError(err, "parse flags")

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	ctx, stop := cancelOnSignal(context.Background(), logger)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Fatal("weather fetch failed", zap.Error(err))
	}
}

func parseFlags(args []string) (*config.CLIOverrides, error) {
	kingpinApp := kingpin.New("weather-fetch", "Fetches current weather for one location from OpenWeatherMap and prints the raw response body")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	envFile := kingpinApp.Flag("env-file", "Path to a .env file loaded before reading the environment").String()
	credentials := kingpinApp.Flag("credentials", "Path to the JSON file holding api_key").Short('c').String()
	endpoint := kingpinApp.Flag("endpoint", "Weather API endpoint URL").String()
	location := kingpinApp.Flag("location", "Location query, e.g. Waltham,MA,US").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	var timeoutSet, failSet bool
	timeout := kingpinApp.Flag("timeout", "Request timeout (0 keeps transport defaults)").IsSetByUser(&timeoutSet).Duration()
	failOnRemote := kingpinApp.Flag("fail-on-remote-error", "Exit non-zero when the service answers with a non-2xx status").IsSetByUser(&failSet).Bool()

	if _, err := kingpinApp.Parse(args); err != nil {
		return nil, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		EnvFile:    *envFile,
	}

	if *credentials != "" {
		overrides.CredentialsFile = credentials
	}

	if *endpoint != "" {
		overrides.Endpoint = endpoint
	}

	if *location != "" {
		overrides.Location = location
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if timeoutSet {
		overrides.Timeout = timeout
	}

	if failSet {
		overrides.FailOnRemoteError = failOnRemote
	}

	return overrides, nil
}

// cancelOnSignal returns a context cancelled on SIGINT or SIGTERM, which aborts
// an in-flight request.
func cancelOnSignal(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-quit:
			logger.Info("signal received, cancelling request", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(quit)
		cancel()
	}
}
