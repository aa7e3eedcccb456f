package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/sutra/internal/config"
)

type SearchCommand struct {
	DatabasePath string
	Query        string
	Limit        int
	Out          io.Writer
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{Out: os.Stdout}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")
	fs.StringVar(&cmd.Query, "q", "", "Text to look for, ignoring case (required)")
	fs.IntVar(&cmd.Limit, "limit", 0, "Print at most this many results (0 = all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search -q <text> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search verse text, transliteration, original script and notation.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s search -q emptiness\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s search -q 色即是空 -db ./sutra.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.Query) == "" {
		fs.Usage()
		return fmt.Errorf("query is required")
	}
	return nil
}

func (cmd *SearchCommand) Run() error {
	app, closeFn, err := openApp(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeFn()

	results, err := app.Query.Search(context.Background(), cmd.Query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(cmd.Out, "%d verses match %q\n", len(results), cmd.Query)
	for i, r := range results {
		if cmd.Limit > 0 && i >= cmd.Limit {
			fmt.Fprintf(cmd.Out, "... %d more\n", len(results)-i)
			break
		}
		fmt.Fprintf(cmd.Out, "\n%s %d:%d\n  %s\n", r.TextTitle, r.ChapterNumber, r.VerseNumber, r.VerseText)
	}
	return nil
}
