// API server entry point for the KeyIP patent client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/turtacn/KeyIP-PatentClient/internal/config"
	"github.com/turtacn/KeyIP-PatentClient/internal/environment"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/KeyIP-PatentClient/internal/interfaces/http"
	"github.com/turtacn/KeyIP-PatentClient/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-PatentClient/internal/interfaces/http/middleware"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to the settings file (default ~/.keyip/settings.yaml)")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *httpPort); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, httpPort int) error {
	if configPath == "" {
		configPath = config.DefaultSettingsPath()
	}
	cfg, err := config.Bootstrap(afero.NewOsFs(), config.ExpandHome(configPath))
	if err != nil {
		return err
	}
	if httpPort > 0 {
		cfg.Server.Port = httpPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := environment.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()
	logging.SetDefault(env.Logger)

	settingsPath := config.ExpandHome(configPath)
	config.Watch(settingsPath, func(*config.Config) {
		env.Logger.Warn("settings file changed; restart the server to apply", logging.String("path", settingsPath))
	}, func(err error) {
		env.Logger.Error("settings file no longer loads", logging.Err(err))
	})

	checkers := make([]handlers.HealthChecker, len(env.Probes))
	for i, p := range env.Probes {
		checkers[i] = p
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.RouterConfig{
		ApplicationHandler: handlers.NewApplicationHandler(env.Query, env.Terms, env.Logger),
		HealthHandler:      handlers.NewHealthHandler(version, checkers...),
		Logging:            middleware.DefaultLoggingConfig(),
		Logger:             env.Logger,
		Collector:          env.Collector,
		Metrics:            env.Metrics,
		MetricsPath:        cfg.Metrics.Path,
	})

	env.Logger.Info("starting KeyIP patent API server",
		logging.String("version", version),
		logging.String("cache", env.Cache.Name()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return srv.Stop(context.Background())
}

//Personal.AI order the ending
