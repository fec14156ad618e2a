package utils

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/internal/config"
)

// InitSentry initializes Sentry for error tracking. It does nothing and
// returns false when no DSN is configured.
func InitSentry(cfg config.SentryConfig, release string) (bool, error) {
	if cfg.DSN == "" {
		logrus.Info("Sentry disabled: SENTRY_DSN is not set")
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          release,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return false, fmt.Errorf("sentry.Init: %w", err)
	}

	logrus.Infof("Sentry initialized for environment %q", cfg.Environment)
	return true, nil
}
