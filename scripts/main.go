package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hanahub/ab-discount-app/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "seed-variant-discounts",
		Description: "Seed random variant discount configurations into postgres",
		Run:         internal.SeedVariantDiscounts,
	},
	{
		Name:        "run-load",
		Description: "Send discount function runs to a running API at a fixed rate",
		Run:         internal.RunLoad,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		shopCount    string
		requests     string
		baseURL      string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&shopCount, "shops", "", "Number of shops to seed")
	flag.StringVar(&requests, "requests", "", "Number of run requests to send")
	flag.StringVar(&baseURL, "base-url", "", "Base URL of the API for load runs")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-24s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if shopCount != "" {
		os.Setenv("SHOP_COUNT", shopCount)
	}
	if requests != "" {
		os.Setenv("REQUEST_COUNT", requests)
	}
	if baseURL != "" {
		os.Setenv("BASE_URL", baseURL)
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
