package main

import (
	"fixpoint/config"
	"fixpoint/di"
	"fixpoint/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
