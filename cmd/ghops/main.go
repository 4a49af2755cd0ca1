// Package main provides the entry point for ghops
package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/quillhq/ghops/internal/cli"
)

// Version information - set via ldflags at build time
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version info
	cli.SetVersionInfo(version, commit, buildDate)

	// Run the CLI
	cli.Execute()
}
