package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/skeletonize/patch"
)

// errNotApplied makes the process exit 1 when nothing was patched.
var errNotApplied = errors.New("patch not applied")

func main() {
	if err := rootCmd().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  "promptpatch",
		Usage: "Inject a prompt prefix into the installed Copilot Chat extension",
		Description: `Finds the newest extension bundle, backs it up to <bundle>.bak once and
inserts the payload in front of the system prompt anchor. Reload the VS Code
window afterwards for the change to take effect.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "payload-file",
				Usage: "File whose contents are injected before the anchor",
			},
			&cli.StringFlag{
				Name:  "anchor",
				Usage: "Text the payload is inserted in front of",
				Value: patch.DefaultAnchor,
			},
			&cli.StringSliceFlag{
				Name:  "pattern",
				Usage: "Glob for extension bundles (default: VS Code and VS Code Server install dirs)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Check that the patch applies without writing",
			},
			&cli.BoolFlag{
				Name:  "restore",
				Usage: "Restore the bundle from its backup",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List matching bundles, newest first",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
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

func run(ctx context.Context, cmd *cli.Command) error {
	patterns := cmd.StringSlice("pattern")
	if len(patterns) == 0 {
		patterns = patch.DefaultPatterns()
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	if cmd.Bool("list") {
		files, err := patch.FindAll(patterns)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: checked %v", patch.ErrNoTarget, patterns)
		}
		for _, f := range files {
			fmt.Fprintln(w, f)
		}
		return nil
	}

	target, err := patch.FindTarget(patterns)
	if err != nil {
		return err
	}
	log.Info("target", "path", target)

	if cmd.Bool("restore") {
		if err := patch.Restore(target); err != nil {
			return err
		}
		log.Info("restored; reload the VS Code window", "path", target)
		return nil
	}

	payloadFile := cmd.String("payload-file")
	if payloadFile == "" {
		return errors.New("--payload-file is required")
	}
	payload, err := os.ReadFile(payloadFile)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	apply := patch.Apply
	if cmd.Bool("dry-run") {
		apply = patch.Check
	}
	ok, err := apply(target, cmd.String("anchor"), string(payload))
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("anchor missing or payload already present", "path", target)
		return errNotApplied
	}

	if cmd.Bool("dry-run") {
		log.Info("patch can be applied", "path", target, "escaped_chars", len(patch.EscapeJS(string(payload))))
		return nil
	}
	log.Info("patched; reload the VS Code window", "path", target)
	return nil
}
