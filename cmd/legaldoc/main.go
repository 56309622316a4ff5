package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/config"
)

const configKey = "config"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "legaldoc",
		Usage:    "Search legal documents and answer questions about them",
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: loadConfig,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP and websocket API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on (overrides config)",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Ask a question; starts an interactive session when no question is given",
				ArgsUsage: "[question]",
				Action:    queryCommand,
			},
			{
				Name:   "seed",
				Usage:  "Insert the sample documents into an empty store",
				Action: seedCommand,
			},
			{
				Name:      "import",
				Usage:     "Fetch a web page and store it as a document",
				ArgsUsage: "<url>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category for the imported document",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "Show recent queries",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of queries to show",
						Value: 20,
					},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	if err := setupLogger(cfg.Log.Level); err != nil {
		return err
	}

	c.App.Metadata[configKey] = cfg
	return nil
}

func validateConfig(cfg *config.Config) error {
	errs := cfg.Validate()
	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("invalid configuration:\n  %s", strings.Join(msgs, "\n  "))
}

func configFrom(c *cli.Context) *config.Config {
	return c.App.Metadata[configKey].(*config.Config)
}

func setupLogger(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
