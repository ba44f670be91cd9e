package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := rootCmd().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:      "skeletonize",
		Usage:     "Condense a Copilot chat export into its skeleton",
		ArgsUsage: "<input-path>",
		Description: `Keeps the conversation and the tool calls, elides tool results and the
metadata tool list, and truncates long string arguments so the log fits
in a model's context window.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path (default: <input>.skeleton<ext>)",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print compression statistics",
			},
			&cli.StringFlag{
				Name:  "stats-format",
				Usage: "Statistics format: terminal, json",
				Value: "terminal",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: copilotmd, html",
				Value: "copilotmd",
			},
			&cli.IntFlag{
				Name:  "threshold",
				Usage: "Truncate strings longer than this many characters",
			},
			&cli.IntFlag{
				Name:  "head",
				Usage: "Characters kept from the start of a truncated string",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "Characters kept from the end of a truncated string",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file path (default: $XDG_CONFIG_HOME/skeletonize/config.yaml)",
			},
			&cli.StringSliceFlag{
				Name:  "redact",
				Usage: "Redact rules applied to the skeleton. Example: --redact=secrets,pii",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Action: run,
	}
}
