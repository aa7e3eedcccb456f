package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/sutra/internal/cli"
	"github.com/mrlokans/sutra/internal/config"
	"github.com/mrlokans/sutra/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "seed":
		cmd = cli.NewSeedCommand()
	case "search":
		cmd = cli.NewSearchCommand()
	case "daily-verse":
		cmd = cli.NewDailyVerseCommand()
	case "audit":
		cmd = cli.NewAuditCommand()
	case "version":
		fmt.Printf("sutra %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve        Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  seed         Insert catalog works missing from the library\n")
	fmt.Fprintf(os.Stderr, "  search       Search verses across the library\n")
	fmt.Fprintf(os.Stderr, "  daily-verse  Print the verse of the day\n")
	fmt.Fprintf(os.Stderr, "  audit        List annotations that no longer resolve\n")
	fmt.Fprintf(os.Stderr, "  version      Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
