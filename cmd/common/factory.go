package common

import (
	"fmt"

	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// NewCommandDeps creates CommandDeps by loading config and creating the
// logger. Commands share this so logging and configuration behave the
// same everywhere.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logging.Level),
		Development: cfg.Logging.Development,
		Encoding:    cfg.Logging.Encoding,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	if cfg.Auth.SecretGenerated {
		log.Warn("SECRET_KEY not configured, using a generated signing secret",
			"note", "issued tokens will not survive a restart")
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
