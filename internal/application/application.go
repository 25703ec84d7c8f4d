package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/weather-fetch/internal/config"
	"github.com/eugenenazirov/weather-fetch/internal/credential"
	"github.com/eugenenazirov/weather-fetch/internal/output"
	"github.com/eugenenazirov/weather-fetch/internal/weather"
)

// ErrRemoteStatus is returned by Run when the remote service answered with a
// non-2xx status and FailOnRemoteError is enabled. The body has already been
// written by then.
var ErrRemoteStatus = errors.New("weather service returned an error status")

// App encapsulates the pipeline dependencies.
type App struct {
	cfg     config.Config
	fetcher weather.Fetcher
	stdout  io.Writer
	logger  *zap.Logger
}

// Option configures App behaviour.
type Option func(*options)

type options struct {
	httpClient *http.Client
	fetcher    weather.Fetcher
	stdout     io.Writer
}

// WithHTTPClient sets the HTTP client used by the weather client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithFetcher replaces the weather client entirely, primarily for tests.
func WithFetcher(f weather.Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithStdout redirects the payload output (defaults to os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	o := options{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = weather.NewClient(
			weather.WithHTTPClient(o.httpClient),
			weather.WithTimeout(cfg.Timeout),
		)
	}

	return &App{
		cfg:     cfg,
		fetcher: fetcher,
		stdout:  o.stdout,
		logger:  logger.With(zap.String("run_id", uuid.NewString())),
	}, nil
}

// Run executes the pipeline once. Any returned error is fatal for the process;
// remote application errors are only errors when FailOnRemoteError is set.
func (a *App) Run(ctx context.Context) error {
	cred, err := credential.Load(a.cfg.CredentialsFile)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	a.logger.Debug("credential loaded",
		zap.String("path", a.cfg.CredentialsFile),
		zap.Stringer("api_key", cred),
	)

	req := weather.NewRequest(a.cfg.Endpoint, a.cfg.Location, cred.APIKey)
	a.logger.Info("fetching current weather",
		zap.String("endpoint", req.Endpoint()),
		zap.String("location", req.Location()),
	)

	resp, err := a.fetcher.Fetch(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch weather: %w", err)
	}

	if err := output.Write(a.stdout, resp.Body); err != nil {
		return err
	}

	if !resp.OK() {
		fields := []zap.Field{
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(resp.Body)),
		}
		if remoteErr, ok := resp.RemoteError(); ok {
			fields = append(fields,
				zap.String("code", remoteErr.Code),
				zap.String("message", remoteErr.Message),
			)
		}
		a.logger.Warn("weather service returned an error status", fields...)
		if a.cfg.FailOnRemoteError {
			return fmt.Errorf("%w: %d", ErrRemoteStatus, resp.StatusCode)
		}
		return nil
	}

	a.logger.Info("weather fetched",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(resp.Body)),
	)
	return nil
}
