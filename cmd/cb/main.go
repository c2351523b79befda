package main

import (
	"github.com/joho/godotenv"

	"choreboard/cmd/cb/root"
)

func main() {
	// Optional .env for CHOREBOARD_DB / CHOREBOARD_PIN; absence is fine.
	_ = godotenv.Load()
	root.Execute()
}
