package obs

import (
	"fmt"

	"go.uber.org/zap"
)

// InitLogger builds the process logger and installs it as zap's global logger.
// Development mode logs human-readable lines at debug level; anything else logs JSON
// at info level. The returned func flushes buffered entries.
func InitLogger(env string) (func(), error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
	}, nil
}
