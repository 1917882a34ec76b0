package kit

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the service logger. LOG_MODE=dev switches to the
// human-readable development encoder.
func NewLogger(service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("LOG_MODE") == "dev" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.InitialFields = map[string]any{"service": service}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
