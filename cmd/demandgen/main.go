package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/demand"
	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/gtfs"
	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/logging"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	app := &cli.App{
		Name:  "demandgen",
		Usage: "generate passenger demand datasets for demand model training",
		Commands: []*cli.Command{
			syntheticCommand(logger),
			simulateCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.LogError(logger, "demandgen failed", err)
		os.Exit(1)
	}
}

func outputFlags(defaultOutput string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   defaultOutput,
			Usage:   "output file path",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "csv",
			Usage: "output format: csv or sqlite",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "random seed; a fixed seed reproduces the dataset byte for byte",
		},
	}
}

func syntheticCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "synthetic",
		Usage: "enumerate a fixed route/stop universe and draw Poisson passenger counts",
		Flags: append(outputFlags("synthetic_demand.csv"),
			&cli.StringFlag{
				Name:  "config",
				Usage: "optional YAML file overriding the synthetic universe",
			},
		),
		Action: func(c *cli.Context) error {
			cfg := demand.DefaultSyntheticConfig()
			if path := c.String("config"); path != "" {
				loaded, err := demand.LoadSyntheticConfig(path)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				cfg = loaded
			}
			if c.IsSet("seed") {
				cfg.Seed = c.Int64("seed")
			}

			records := demand.Synthetic(cfg)
			if err := writeRecords(c, records); err != nil {
				return err
			}

			logging.LogOperation(logger, "synthetic_demand_written",
				slog.String("output", c.String("output")),
				slog.Int("records", len(records)),
				slog.Int64("seed", cfg.Seed))
			return nil
		},
	}
}

func simulateCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "derive demand records from a real GTFS feed's schedule structure",
		Flags: append(outputFlags("synthetic_demand.csv"),
			&cli.StringFlag{
				Name:     "gtfs",
				Usage:    "path to a GTFS zip archive or directory",
				Required: true,
			},
		),
		Action: func(c *cli.Context) error {
			processor, err := gtfs.NewProcessorWithLogger(c.String("gtfs"), logger)
			if err != nil {
				return err
			}

			records := demand.FromFeed(processor.Feed(), c.Int64("seed"))
			if err := writeRecords(c, records); err != nil {
				return err
			}

			logging.LogOperation(logger, "simulated_demand_written",
				slog.String("gtfs", c.String("gtfs")),
				slog.String("output", c.String("output")),
				slog.Int("records", len(records)),
				slog.Int64("seed", c.Int64("seed")))
			return nil
		},
	}
}

func writeRecords(c *cli.Context, records []demand.Record) error {
	output := c.String("output")
	switch format := c.String("format"); format {
	case "csv":
		return demand.WriteCSV(output, records)
	case "sqlite":
		return demand.WriteSQLite(context.Background(), output, records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
