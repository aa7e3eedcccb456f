package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/sutra/internal/config"
)

type AuditCommand struct {
	DatabasePath string
	Out          io.Writer
}

func NewAuditCommand() *AuditCommand {
	return &AuditCommand{Out: os.Stdout}
}

func (cmd *AuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List annotations whose text, chapter or verse is no longer in the library.\n")
		fmt.Fprintf(os.Stderr, "Nothing is modified.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *AuditCommand) Run() error {
	app, closeFn, err := openApp(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := app.Auditor.Run(context.Background())
	if err != nil {
		return err
	}

	if len(report.Dangling) == 0 {
		fmt.Fprintln(cmd.Out, "All annotations resolve.")
		return nil
	}
	fmt.Fprintf(cmd.Out, "%d annotations no longer resolve:\n", len(report.Dangling))
	for _, d := range report.Dangling {
		fmt.Fprintf(cmd.Out, "  %-16s %-36s %s (%s)\n", d.Kind, d.ID, d.Position, d.Reason)
	}
	return nil
}
