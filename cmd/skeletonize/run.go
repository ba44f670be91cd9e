package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sonnes/skeletonize/core"
	"github.com/sonnes/skeletonize/document"
	"github.com/sonnes/skeletonize/render"
	"github.com/sonnes/skeletonize/skeleton"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return errors.New("missing <input-path>")
	}

	format, err := document.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	extractor, err := skeleton.New(skeleton.Config{
		Policy: resolvePolicy(cmd, cfg),
		Logger: log.Default(),
	})
	if err != nil {
		return err
	}

	a := newApp()
	docRenderer, err := a.document(format)
	if err != nil {
		return err
	}
	var statsRenderer render.Renderer
	if cmd.Bool("stats") {
		if statsRenderer, err = a.report(cmd.String("stats-format")); err != nil {
			return err
		}
	}

	content, err := document.Read(input)
	if err != nil {
		return err
	}

	s := extractor.Extract(content)
	s.Input = input
	s.Output = cmd.String("output")
	if s.Output == "" {
		s.Output = document.OutputPath(input, format)
	}
	log.Debug("extracted", "input", input, "kept", s.Stats.KeptLines, "omitted", s.Stats.OmittedLines)

	redactor, err := newRedactor(cmd, cfg)
	if err != nil {
		return err
	}
	if redactor != nil {
		if err := core.Chain(s, redactor); err != nil {
			return fmt.Errorf("redact: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := docRenderer.Render(&buf, s); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := document.WriteFile(s.Output, buf.Bytes()); err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Skeleton saved to: %s\n", s.Output)

	if statsRenderer != nil {
		if err := statsRenderer.Render(w, s); err != nil {
			return fmt.Errorf("render stats: %w", err)
		}
	}
	return nil
}
