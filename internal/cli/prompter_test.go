package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "YES\n", true},
		{"no", "n\n", false},
		{"empty defaults to no", "\n", false},
		{"garbage is no", "sure\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Move 3 files?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Move 3 files?")
		})
	}
}

func TestConfirm_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// A reader that never yields a line.
	p := NewPrompter(blockingReader{ch: make(chan struct{})}, &strings.Builder{})

	_, err := p.Confirm(ctx, "Proceed?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

type blockingReader struct{ ch chan struct{} }

func (b blockingReader) Read(_ []byte) (int, error) {
	<-b.ch
	return 0, nil
}
