package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/sutra/internal/config"
	"github.com/mrlokans/sutra/internal/query"
)

type DailyVerseCommand struct {
	DatabasePath string
	Date         string
	Out          io.Writer
}

func NewDailyVerseCommand() *DailyVerseCommand {
	return &DailyVerseCommand{Out: os.Stdout}
}

func (cmd *DailyVerseCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("daily-verse", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")
	fs.StringVar(&cmd.Date, "date", "", "Day to pick the verse for, YYYY-MM-DD (default today)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s daily-verse [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the verse of the day. The same day always gives the same verse.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Date != "" {
		if _, err := time.ParseInLocation(time.DateOnly, cmd.Date, time.Local); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", cmd.Date)
		}
	}
	return nil
}

func (cmd *DailyVerseCommand) Run() error {
	app, closeFn, err := openApp(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	var verse *query.DailyVerse
	if cmd.Date != "" {
		date, _ := time.ParseInLocation(time.DateOnly, cmd.Date, time.Local)
		verse, err = app.Query.DailyVerse(ctx, date)
	} else {
		verse, err = app.Query.Today(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to select verse: %w", err)
	}
	if verse == nil {
		fmt.Fprintln(cmd.Out, "The library is empty. Run the seed command first.")
		return nil
	}

	fmt.Fprintf(cmd.Out, "%s\n\n  - %s\n", verse.Text, verse.Source)
	if v := verse.Verse; v.HasParallelText() {
		fmt.Fprintln(cmd.Out)
		for _, line := range []*string{v.Transliteration, v.OriginalScript, v.Notation} {
			if line != nil {
				fmt.Fprintf(cmd.Out, "  %s\n", *line)
			}
		}
	}
	return nil
}
