package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/llm/llmtest"
)

func TestLimited_PassesThrough(t *testing.T) {
	fake := llmtest.NewFake("briefing", llmtest.Web("OCHA", "https://ocha.org/a"))
	l := llm.NewLimited(fake, 2, 600)

	resp, err := l.Generate(context.Background(), "prompt", llm.Options{Grounding: true})
	require.NoError(t, err)
	assert.Equal(t, "briefing", resp.Text)
	require.Len(t, resp.GroundingChunks, 1)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Opts.Grounding)
}

func TestLimited_CancelledContext(t *testing.T) {
	fake := llmtest.NewFake("unused")
	l := llm.NewLimited(fake, 1, 1)

	// 消耗掉唯一的 burst 令牌
	_, err := l.Generate(context.Background(), "first", llm.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Generate(ctx, "second", llm.Options{})
	require.Error(t, err)
	assert.Len(t, fake.Calls(), 1)
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := llm.Unavailable("gemini", cause)

	assert.ErrorIs(t, err, llm.ErrCollaboratorUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gemini")
}

func TestAsUnavailable(t *testing.T) {
	assert.NoError(t, llm.AsUnavailable(nil))

	tagged := llm.Unavailable("gemini", errors.New("503"))
	assert.Same(t, tagged, llm.AsUnavailable(tagged))

	assert.Equal(t, context.Canceled, llm.AsUnavailable(context.Canceled))

	err := llm.AsUnavailable(errors.New("connection reset"))
	assert.ErrorIs(t, err, llm.ErrCollaboratorUnavailable)
}
