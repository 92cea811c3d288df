package main

import (
	"os"

	"github.com/noah-isme/citizen-portal/internal/cli"
)

// @title Citizen Portal API
// @version 1.0.0
// @description Citizen services catalog, engagement logging and admin insights.
// @BasePath /
// @schemes http

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
