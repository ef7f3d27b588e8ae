package main

import (
	"aulaboard/config"
	"aulaboard/di"
	"aulaboard/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
