package main

import (
	"log/slog"

	"github.com/guideflow/guideflow/pkg/guideflow"

	"github.com/joho/godotenv"
)

func main() {

	// a missing .env file is fine, settings fall back to the environment
	_ = godotenv.Load()

	guideflow.SetupLogger()

	if err := guideflow.Start(nil); err != nil {
		slog.Error("Server exited with error", "error", err)
	}
}
