package logger

import (
	"log/slog"
	"time"
)

// slowCommandThreshold is where a finished command stops being routine and
// gets flagged.
const slowCommandThreshold = 2 * time.Second

// LogCommand records the outcome of one slash command invocation.
func LogCommand(name, userID string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.String("user_id", userID),
		slog.Duration("took", duration),
	}

	switch {
	case err != nil:
		slog.Error("Command failed", append(attrs,
			slog.Any("error", err),
			slog.String("status", "failed"),
		)...)
	case duration > slowCommandThreshold:
		slog.Warn("Command executed slowly", append(attrs,
			slog.String("status", "slow"),
		)...)
	default:
		slog.Info("Command completed", append(attrs,
			slog.String("status", "success"),
		)...)
	}
}

// LogQuery records one database statement with its runtime. Successful
// statements log at Debug so routine pool traffic stays out of Info.
func LogQuery(operation, query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("query", query),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", attrs...)
}

// LogSystem records a startup or lifecycle event.
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError records a failure outside the command and query paths.
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.Any("error", err),
		slog.String("type", "error"),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
