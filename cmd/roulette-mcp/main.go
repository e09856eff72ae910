package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/roulette/internal/config"
	roulettemcp "github.com/peterkuimelis/roulette/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to a roulette YAML config file")
	livesDir := flag.String("lives", "", "directory holding extra-life files")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *livesDir != "" {
		cfg.LivesDir = *livesDir
	}
	// stdout carries the protocol.
	cfg.Sound = false
	cfg.Animation = false

	s := server.NewMCPServer("roulette", "1.0.0")
	roulettemcp.RegisterTools(s, roulettemcp.NewSession(cfg))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
