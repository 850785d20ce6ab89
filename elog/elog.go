// Package elog wraps runtime.Logger so every line is tagged with the acting
// user when the context carries one, the way the teacher's items/logging.go
// tags every line with the acting user.
package elog

import (
	"context"

	"github.com/heroiclabs/nakama-common/runtime"
)

const ctxKeyUserID = "user_id"

// WithUser returns a context that future log calls can pull a user tag from.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func userFromCtx(ctx context.Context) string {
	if uid, ok := ctx.Value(ctxKeyUserID).(string); ok {
		return uid
	}
	if uid, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); ok {
		return uid
	}
	return ""
}

// WithFields logs at level with extra structured fields, always including
// the user ID when one is present on the context.
func WithFields(ctx context.Context, logger runtime.Logger, level, message string, fields map[string]interface{}) {
	if userID := userFromCtx(ctx); userID != "" {
		if fields == nil {
			fields = make(map[string]interface{})
		}
		fields["user"] = userID
	}

	if len(fields) == 0 {
		plain(logger, level, message)
		return
	}

	l := logger.WithFields(fields)
	switch level {
	case "debug":
		l.Debug(message)
	case "warn":
		l.Warn(message)
	case "error":
		l.Error(message)
	default:
		l.Info(message)
	}
}

func plain(logger runtime.Logger, level, message string) {
	switch level {
	case "debug":
		logger.Debug(message)
	case "warn":
		logger.Warn(message)
	case "error":
		logger.Error(message)
	default:
		logger.Info(message)
	}
}

func Info(ctx context.Context, logger runtime.Logger, message string) {
	WithFields(ctx, logger, "info", message, nil)
}

func Warn(ctx context.Context, logger runtime.Logger, message string) {
	WithFields(ctx, logger, "warn", message, nil)
}

func Debug(ctx context.Context, logger runtime.Logger, message string) {
	WithFields(ctx, logger, "debug", message, nil)
}

func Error(ctx context.Context, logger runtime.Logger, message string, err error) {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	WithFields(ctx, logger, "error", message, fields)
}

// Success logs a terse "<operation> completed" info line.
func Success(ctx context.Context, logger runtime.Logger, operation string) {
	Info(ctx, logger, operation+" completed")
}
