package main

import (
	"fmt"
	"os"

	"github.com/addrconv/internal/config"
)

func main() {
	// Load environment configuration
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	rootCmd := createRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
