package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a sugared zap logger. Mode "prod"/"production" selects the
// JSON production config, anything else the development console config.
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
