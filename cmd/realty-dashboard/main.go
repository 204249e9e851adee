package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/realtydash/realty-dashboard/internal/auth"
	"github.com/realtydash/realty-dashboard/internal/config"
	"github.com/realtydash/realty-dashboard/internal/server"
	"github.com/realtydash/realty-dashboard/internal/store"
	"github.com/realtydash/realty-dashboard/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	fallback, err := store.NewFileStore(conf.Storage.FallbackDir)
	if err != nil {
		logger.Fatal("failed to initialize fallback store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// The database is allowed to fail at startup; the service then runs
	// entirely on the local fallback until the next restart.
	var st store.Store
	primary, err := store.NewGormStore(conf.Database)
	if err != nil {
		logger.Warn("database unavailable, running on local fallback store",
			zap.String("op", "main"),
			zap.Error(err),
		)
		st = fallback
	} else {
		st = store.NewFallback(primary, fallback, logger)
	}

	authSvc := auth.NewService(st, conf.Security.BcryptCost, logger)
	router := server.NewRouter(conf, st, authSvc, logger, version)

	listen := conf.Server.Address
	if *address != "" {
		listen = *address
	}

	logger.Info("starting realty-dashboard",
		zap.String("op", "main"),
		zap.String("address", listen),
		zap.String("version", version),
	)
	if err := router.Run(listen); err != nil {
		logger.Fatal("server exited",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
