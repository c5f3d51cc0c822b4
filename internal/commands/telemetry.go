package commands

import (
	"context"
	"strings"
	"time"

	"github.com/Hilal-Ahmad786/Blogweb/internal/logging"
	"github.com/Hilal-Ahmad786/Blogweb/pkg/interfaces"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const commandModuleRoot = "blog.commands"

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome. ErrorCode and
// Category are taken from the returned error once it has been classified.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	ErrorCode string
	Category  goerrors.Category
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once after every command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes with logger. Failures in the
// validation or not found categories are logged as warnings since they
// describe the content, not the command.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		if info.Status == TelemetryStatusSuccess {
			entry.Info("command.execute.success", args...)
			return
		}

		args = append(args, "error", info.Error)
		if info.ErrorCode != "" {
			args = append(args, "error_code", info.ErrorCode, "error_category", string(info.Category))
		}
		switch {
		case info.Status == TelemetryStatusContextError:
			entry.Error("command.execute.context_error", args...)
		case info.Category == goerrors.CategoryValidation, info.Category == goerrors.CategoryNotFound:
			entry.Warn("command.execute.rejected", args...)
		default:
			entry.Error("command.execute.failed", args...)
		}
	}
}

// CommandLogger returns the logger for a command module, named under
// blog.commands and tagged with the module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
