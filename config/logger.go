package config

import (
	"log"

	"go.uber.org/zap"

	"knowledgebase/global"
)

func initLogger() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	global.Logger = logger.Sugar()
}
