// Package html renders a skeleton as a standalone HTML page styled with
// Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/sonnes/skeletonize/core"
	"github.com/sonnes/skeletonize/render"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders a skeleton to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax highlighting.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl}
}

type pageData struct {
	Title    string
	Skeleton *core.Skeleton
	Body     template.HTML
	Calls    []string // tool names in order of appearance
}

// Render writes s as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, s *core.Skeleton) error {
	doc, calls := fenceToolCalls(s.Text)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(doc), &buf); err != nil {
		return fmt.Errorf("goldmark convert: %w", err)
	}

	title := "Skeleton"
	if s.Input != "" {
		title = filepath.Base(s.Input)
	}

	return r.tmpl.ExecuteTemplate(w, "page.html", pageData{
		Title:    title,
		Skeleton: s,
		Body:     template.HTML(buf.String()),
		Calls:    calls,
	})
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatNumber": render.FormatNumber,
		"ratio": func(st core.Stats) string {
			return fmt.Sprintf("%.1f%%", st.CompressionRatio())
		},
	}
}
