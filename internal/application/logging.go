package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/office-agenda/internal/logging"
	"github.com/example/office-agenda/internal/persistence"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// serviceLogger scopes a logger to one service operation. A logger carried by
// ctx wins over base so a command can tag every line it causes.
func serviceLogger(ctx context.Context, base *slog.Logger, service, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = defaultLogger(base)
	}

	scoped := make([]any, 0, len(attrs)+2)
	scoped = append(scoped, slog.String("service", service))
	if operation != "" {
		scoped = append(scoped, slog.String("operation", operation))
	}
	return logger.With(append(scoped, attrs...)...)
}

// logOutcome is deferred by mutating operations with a pointer to their named
// error result.
func logOutcome(ctx context.Context, logger *slog.Logger, success, failure string, err *error) {
	if *err != nil {
		logger.ErrorContext(ctx, failure, "error", *err, "error_kind", ErrorKind(*err))
		return
	}
	logger.InfoContext(ctx, success)
}

var errorKinds = []struct {
	target error
	kind   string
}{
	{ErrUnauthorized, "unauthorized"},
	{ErrNotFound, "not_found"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{persistence.ErrCorruptSnapshot, "corrupt_snapshot"},
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, candidate := range errorKinds {
		if errors.Is(err, candidate.target) {
			return candidate.kind
		}
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}
	return "unexpected"
}
