package main

import (
	"github.com/joho/godotenv"
	"github.com/reco-ai/knowledge-be/cmd"
)

func main() {
	// .env is optional outside local development
	godotenv.Load()
	cmd.Execute()
}
