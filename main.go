// Package main provides the primary entrypoint for the application.
package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/quillhq/ghops/internal/cli"
)

// The main function's sole purpose is to pass execution to the command layer
func main() {
	cli.Execute()
}
