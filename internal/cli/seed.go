package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/config"
	"github.com/mrlokans/sutra/internal/entrypoint"
)

// openApp opens the library at dbPath using environment config for
// everything else.
func openApp(dbPath string) (*entrypoint.App, func(), error) {
	cfg := config.NewConfig()
	cfg.Database.Path = dbPath

	app, err := entrypoint.NewApp(cfg, clock.System{})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := app.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	return app, closeFn, nil
}

type SeedCommand struct {
	DatabasePath string
	JSON         bool
	Out          io.Writer
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Out: os.Stdout}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert catalog works that are missing from the library. Works already\n")
		fmt.Fprintf(os.Stderr, "present under their title or an alias are left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	app, closeFn, err := openApp(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeFn()

	result := app.Seeder.Run(context.Background())

	if cmd.JSON {
		enc := json.NewEncoder(cmd.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(cmd.Out, "Inserted: %d\n", len(result.Inserted))
	for _, title := range result.Inserted {
		fmt.Fprintf(cmd.Out, "  + %s\n", title)
	}
	fmt.Fprintf(cmd.Out, "Already present: %d\n", len(result.Skipped))
	if len(result.Failed) > 0 {
		fmt.Fprintf(cmd.Out, "Failed: %d\n", len(result.Failed))
		for _, title := range result.Failed {
			fmt.Fprintf(cmd.Out, "  ! %s\n", title)
		}
		return fmt.Errorf("%d works failed to seed", len(result.Failed))
	}
	return nil
}
