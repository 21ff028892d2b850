package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinka12/amdash/internal/config"
	"github.com/pinka12/amdash/internal/logging"
)

// Environment overrides for log level and format, checked after the
// config file but before --debug.
const (
	envLogLevel  = "AMDASH_LOG_LEVEL"
	envLogFormat = "AMDASH_LOG_FORMAT"
)

// setupLogging configures logging based on config file, environment, and
// CLI flags, stamps a trace ID into the command context, and returns the
// closer for any log file handle.
func setupLogging(cmd *cobra.Command, cfg config.Config) io.Closer {
	loggingCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}

	if envLevel := os.Getenv(envLogLevel); envLevel != "" {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(envLogFormat); envFormat != "" {
		loggingCfg.Format = envFormat
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	log, closer := logging.New(loggingCfg)
	logger = logging.ComponentLogger(log, "cli")

	traceID := logging.NewTraceID()
	ctx := logging.ContextWithTraceID(cmd.Context(), traceID)
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return closer
}
