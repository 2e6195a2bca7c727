package bootstrap

import (
	"github.com/osse101/LootForge_Go/internal/config"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// SetupLogger initializes the process logger from cfg and logs the startup
// banner and any configuration warnings.
func SetupLogger(cfg *config.Config) {
	// Source locations only in dev
	addSource := cfg.Environment == "dev"

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		Version,
		cfg.Environment,
		addSource,
	))

	logger.Info(LogMsgLoggingInitialized, LogFieldLogLevel, cfg.LogLevel, LogFieldLogFormat, cfg.LogFormat)
	logger.Info(LogMsgStartingLootForge,
		LogFieldEnvironment, cfg.Environment,
		LogFieldVersion, Version)
	logger.Debug(LogMsgConfigurationLoaded,
		LogFieldBackend, cfg.StatsBackend,
		LogFieldTable, cfg.LootTablePath,
		LogFieldPort, cfg.Port)

	for _, w := range cfg.Warnings() {
		logger.Warn(LogMsgConfigWarning, LogFieldWarning, w)
	}
}
