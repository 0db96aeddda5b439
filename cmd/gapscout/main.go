package main

import (
	"gapscout/cmd/cmd"
	"gapscout/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
