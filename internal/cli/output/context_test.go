package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRendererContext(t *testing.T) {
	var nilCtx context.Context
	_, ok := FromContext(nilCtx)
	assert.False(t, ok, "nil context")

	_, ok = FromContext(context.Background())
	assert.False(t, ok, "empty context")

	_, ok = FromContext(WithRenderer(context.Background(), nil))
	assert.False(t, ok, "nil renderer")

	r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, ModeMarkdown)
	got, ok := FromContext(WithRenderer(context.Background(), r))
	assert.True(t, ok)
	assert.Same(t, r, got)
}
