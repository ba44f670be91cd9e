package main

import (
	"fmt"
	"io"

	"github.com/sonnes/skeletonize/config"
	"github.com/sonnes/skeletonize/core"
	"github.com/sonnes/skeletonize/document"
	"github.com/sonnes/skeletonize/redact"
	"github.com/sonnes/skeletonize/render"
	htmlrender "github.com/sonnes/skeletonize/render/html"
	jsonrender "github.com/sonnes/skeletonize/render/json"
	"github.com/sonnes/skeletonize/render/terminal"
	"github.com/sonnes/skeletonize/truncate"
	"github.com/urfave/cli/v3"
)

// app holds the document and report renderer registries used by the command.
type app struct {
	documents map[document.Format]func() render.Renderer
	reports   map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		documents: map[document.Format]func() render.Renderer{
			document.FormatCopilotMD: func() render.Renderer { return textRenderer{} },
			document.FormatHTML:      func() render.Renderer { return htmlrender.New() },
		},
		reports: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"json":     func() render.Renderer { return &jsonrender.Renderer{Indent: true} },
		},
	}
}

func (a *app) document(f document.Format) (render.Renderer, error) {
	fn, ok := a.documents[f]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", f)
	}
	return fn(), nil
}

func (a *app) report(name string) (render.Renderer, error) {
	fn, ok := a.reports[name]
	if !ok {
		return nil, fmt.Errorf("unknown stats format %q", name)
	}
	return fn(), nil
}

// textRenderer writes the skeleton text as is.
type textRenderer struct{}

func (textRenderer) Render(w io.Writer, s *core.Skeleton) error {
	_, err := io.WriteString(w, s.Text)
	return err
}

// loadConfig reads --config, or the default location when unset.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// resolvePolicy layers CLI flags over the config file and environment.
func resolvePolicy(cmd *cli.Command, cfg config.Config) truncate.Policy {
	p := cfg.Policy()
	if cmd.IsSet("threshold") {
		p.Threshold = cmd.Int("threshold")
	}
	if cmd.IsSet("head") {
		p.Head = cmd.Int("head")
	}
	if cmd.IsSet("tail") {
		p.Tail = cmd.Int("tail")
	}
	return p
}

// newRedactor builds a Redactor from --redact, falling back to the config
// file. Returns nil when no rules are selected.
func newRedactor(cmd *cli.Command, cfg config.Config) (*redact.Redactor, error) {
	var (
		rc  redact.Config
		ok  bool
		err error
	)
	if rules := cmd.StringSlice("redact"); len(rules) > 0 {
		rc, err = redact.ParseKinds(rules)
		ok = true
		if cfg.Redact != nil {
			rc.Allowlist = cfg.Redact.Allowlist
		}
	} else {
		rc, ok, err = cfg.RedactConfig()
	}
	if err != nil || !ok {
		return nil, err
	}
	return redact.New(rc)
}
