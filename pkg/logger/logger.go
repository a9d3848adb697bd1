package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide zap logger. Development mode gives console
// output with colors; anything else gets production JSON.
func New(mode string) (*zap.Logger, error) {
	if mode == "debug" || mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
