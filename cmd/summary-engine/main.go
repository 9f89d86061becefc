package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/spherical-ai/summary-engine/cmd/summary-engine/commands"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
