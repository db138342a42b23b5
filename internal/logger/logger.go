package logger

import (
	"go-storefront/internal/config"
	"go-storefront/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the injected application logger: a console zap logger whose
// core is teed into an async MongoDB writer. Nothing in the codebase uses the
// zap globals; the logger travels through the Fx graph.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	dbWriter := NewDBLogWriter(mongodb, cfg)

	// Tee core: every entry goes to both the console encoder and the DB sink.
	finalCore := NewDBCore(baseLogger.Core(), dbWriter)

	return zap.New(finalCore, zap.AddCaller()), nil
}
