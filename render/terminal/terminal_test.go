package terminal

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/skeletonize/core"
)

func render(t *testing.T, s *core.Skeleton) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{Width: 80}).Render(&buf, s))
	return ansi.Strip(buf.String())
}

func TestRenderReport(t *testing.T) {
	out := render(t, &core.Skeleton{
		Input:  "logs/session.copilot.md",
		Output: "logs/session.skeleton.copilot.md",
		Stats: core.Stats{
			OriginalLines:       12345,
			KeptLines:           2469,
			OmittedLines:        9876,
			ToolBlocksProcessed: 42,
		},
	})

	assert.Contains(t, out, "Skeleton stats")
	assert.Contains(t, out, "logs/session.copilot.md")
	assert.Contains(t, out, "logs/session.skeleton.copilot.md")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "2,469")
	assert.Contains(t, out, "9,876")
	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "─")

	assert.NotContains(t, out, "Strings truncated")
	assert.NotContains(t, out, "Chars saved")
	assert.NotContains(t, out, "Tools list")
	assert.NotContains(t, out, "Pattern fallbacks")
	assert.NotContains(t, out, "Redactions")
}

func TestRenderOptionalRows(t *testing.T) {
	out := render(t, &core.Skeleton{
		Input:  "in.md",
		Output: "out.md",
		Stats: core.Stats{
			OriginalLines:        10,
			KeptLines:            10,
			StringsTruncated:     3,
			CharsSaved:           1500,
			MetadataToolsOmitted: true,
			PatternFallbacks:     1,
			Redactions:           2,
		},
	})

	assert.Contains(t, out, "0.0%")
	assert.Contains(t, out, "Strings truncated  3")
	assert.Contains(t, out, "Chars saved        1,500")
	assert.Contains(t, out, "Tools list         omitted")
	assert.Contains(t, out, "Pattern fallbacks  1")
	assert.Contains(t, out, "Redactions         2")
}

func TestRenderEmptyDocument(t *testing.T) {
	out := render(t, &core.Skeleton{Input: "empty.md", Output: "empty.skeleton.md"})
	assert.Contains(t, out, "0.0%")
}
