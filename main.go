package main

import (
	"context"
	"os"

	"github.com/robmorgan/choreo/logger"
)

const simulatedLatencyMillis = 150

func main() {
	ctx := context.Background()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.GetProjectLogger().Errorf("choreo: %v", err)
		os.Exit(1)
	}
}
