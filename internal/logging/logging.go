// Package logging builds the process logger and carries the session id on a
// context so component loggers can tag their entries with it.
package logging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// New builds a development-encoded logger writing to output ("stderr",
// "stdout" or a file path) at the given level.
func New(level, output string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if strings.TrimSpace(output) == "" {
		output = "stderr"
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	// Stack traces on warnings would flood the console between prompts.
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// For returns component tagged with the session id on ctx, keeping the
// component's logger name. A nil component yields a no-op logger.
func For(ctx context.Context, component *zap.Logger) *zap.Logger {
	if component == nil {
		component = zap.NewNop()
	}
	if ctx == nil {
		return component
	}
	if id := SessionID(ctx); id != "" {
		return component.With(zap.String("session_id", id))
	}
	return component
}
