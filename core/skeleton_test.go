package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionRatio(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"empty document", Stats{}, 0},
		{"nothing removed", Stats{OriginalLines: 10, KeptLines: 10}, 0},
		{"three quarters removed", Stats{OriginalLines: 100, KeptLines: 25}, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stats.CompressionRatio(), 1e-9)
		})
	}
}

type upper struct{ calls *int }

func (u upper) Transform(s *Skeleton) error {
	*u.calls++
	s.Text += "!"
	return nil
}

type failing struct{}

func (failing) Transform(*Skeleton) error { return errors.New("boom") }

func TestChain(t *testing.T) {
	var calls int
	s := &Skeleton{Text: "x"}
	require.NoError(t, Chain(s, upper{&calls}, nil, upper{&calls}))
	assert.Equal(t, "x!!", s.Text)
	assert.Equal(t, 2, calls)

	err := Chain(s, failing{}, upper{&calls})
	require.EqualError(t, err, "boom")
	assert.Equal(t, 2, calls, "chain stops at first error")
}
