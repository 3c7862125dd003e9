package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iwvelando/valuation-kernel/internal/config"
	"github.com/iwvelando/valuation-kernel/internal/server"
	"github.com/iwvelando/valuation-kernel/internal/valuation"
	"github.com/iwvelando/valuation-kernel/pkg/constants"
	"github.com/iwvelando/valuation-kernel/pkg/output"
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
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to valuation config file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	outputFormat := flag.String("output-format", "", "output format override (pretty, csv)")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot valuation")
	serverConfigLocation := flag.String("server-config", "", "path to server configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration at %s: %v\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	validator := config.Validator{Conf: conf}
	for _, warning := range validator.ValidateAll() {
		logger.Warn(warning, zap.String("op", "main"))
	}

	engine := valuation.NewEngine(logger)
	report, err := engine.Run(*conf)
	if err != nil {
		logger.Fatal("valuation failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	format := conf.Output.Format
	if *outputFormat != "" {
		format = *outputFormat
	}
	switch format {
	case constants.OutputFormatCSV:
		output.CsvFormat(report)
	case constants.OutputFormatPretty, "":
		output.PrettyFormat(report)
	default:
		logger.Fatal(fmt.Sprintf("invalid output format %s", format),
			zap.String("op", "main"),
		)
	}
}

func runServer(serverConfigLocation, logLevelOverride string) {
	serverConfig, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load server configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(serverConfig.Logging, logLevelOverride)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	handler := server.NewHandler(logger, serverConfig.UploadSizeBytes(), version)
	logger.Info("starting valuation API",
		zap.String("op", "main"),
		zap.String("address", serverConfig.Address),
	)
	if err := http.ListenAndServe(serverConfig.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
