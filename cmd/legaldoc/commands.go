package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/pipeline"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/store"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/server"
)

func getSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func serveCommand(c *cli.Context) error {
	cfg := configFrom(c)
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
		if err := validateConfig(cfg); err != nil {
			return err
		}
	}

	p, s, err := buildPipeline(c.Context, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := server.New(server.Config{
		Addr:           cfg.Addr(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Debug:          strings.EqualFold(cfg.Log.Level, "debug"),
	}, p)

	return srv.Run(c.Context)
}

func queryCommand(c *cli.Context) error {
	p, s, err := buildPipeline(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer s.Close()

	if c.Args().Present() {
		return answer(c, p, strings.Join(c.Args().Slice(), " "))
	}

	// Interactive loop with colored output
	out := c.App.Writer
	color.New(color.FgCyan).Fprintln(out, "\nAsk about your legal documents (type 'exit' to quit)")

	scanner := bufio.NewScanner(c.App.Reader)
	userPrompt := color.New(color.FgGreen)

	for {
		userPrompt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if q := strings.ToLower(query); q == "exit" || q == "quit" {
			break
		}

		if err := answer(c, p, query); err != nil {
			color.New(color.FgRed).Fprintf(out, "Error: %v\n", err)
		}
	}

	return scanner.Err()
}

func answer(c *cli.Context, p *pipeline.Pipeline, query string) error {
	spinner := getSpinner(c.App.ErrWriter, " Searching documents...")
	result, err := p.ProcessQuery(c.Context, query)
	spinner.Finish()
	if err != nil {
		return err
	}

	out := c.App.Writer
	color.New(color.FgCyan).Fprintf(out, "\nAssistant: %s\n", result.Answer)
	if len(result.SourceDocuments) > 0 {
		color.New(color.FgBlue).Fprintf(out, "\nSources: %s\n", strings.Join(result.SourceDocuments, ", "))
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	s, err := openStore(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := store.Seed(c.Context, s)
	if err != nil {
		return fmt.Errorf("failed to seed documents: %w", err)
	}

	if n == 0 {
		color.New(color.FgYellow).Fprintln(c.App.Writer, "Store already has documents, nothing seeded")
		return nil
	}
	color.New(color.FgGreen).Fprintf(c.App.Writer, "✓ Seeded %d documents\n", n)
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one URL, got %d arguments", c.NArg())
	}

	p, s, err := buildPipeline(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer s.Close()

	spinner := getSpinner(c.App.ErrWriter, " Importing "+c.Args().First())
	doc, err := p.ImportDocument(c.Context, c.Args().First(), c.String("category"))
	spinner.Finish()
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(c.App.Writer, "✓ Imported %q (%s) as %s\n", doc.Title, doc.Category, doc.ID)
	return nil
}

func historyCommand(c *cli.Context) error {
	s, err := openStore(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer s.Close()

	logs, err := s.QueryHistory(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to load query history: %w", err)
	}

	out := c.App.Writer
	if len(logs) == 0 {
		fmt.Fprintln(out, "No queries yet")
		return nil
	}
	for _, l := range logs {
		printQueryLog(out, l)
	}
	return nil
}

func printQueryLog(out io.Writer, l models.QueryLog) {
	color.New(color.FgGreen).Fprintf(out, "%s  %s\n", l.CreatedAt.Local().Format("2006-01-02 15:04:05"), l.QueryText)
	if len(l.SourceDocuments) > 0 {
		color.New(color.FgBlue).Fprintf(out, "  sources: %s\n", strings.Join(l.SourceDocuments, ", "))
	}
}
