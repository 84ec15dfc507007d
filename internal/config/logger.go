package config

import (
	"context"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type logFieldsKey struct{}

// InitLogger configures the shared logger for the given environment.
func InitLogger(env, level string) {
	Logger.SetOutput(os.Stdout)
	if env == "production" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}

// WithLogFields returns a context whose WithContext logger carries fields.
func WithLogFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	if existing, ok := ctx.Value(logFieldsKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, logFieldsKey{}, merged)
}

// WithContext returns a logger entry tagged with the request id and any
// fields attached through WithLogFields.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if fields, ok := ctx.Value(logFieldsKey{}).(logrus.Fields); ok {
		entry = entry.WithFields(fields)
	}
	return entry.WithContext(ctx)
}
