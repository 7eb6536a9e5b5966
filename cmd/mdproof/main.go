package main

import (
	"os"

	"github.com/joho/godotenv"

	"mdproof/internal/cli"
)

func main() {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	os.Exit(cli.Run())
}
