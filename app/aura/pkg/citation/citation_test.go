package citation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/aura/app/aura/pkg/citation"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/llm/llmtest"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

func TestCollect_FirstSeenWins(t *testing.T) {
	chunks := []llm.GroundingChunk{
		llmtest.Web("A1", "a"),
		llmtest.Web("B", "b"),
		llmtest.Web("A2", "a"),
	}

	got := citation.Collect(chunks)
	assert.Equal(t, []model.Citation{
		{Title: "A1", URI: "a"},
		{Title: "B", URI: "b"},
	}, got)
}

func TestCollect_Idempotent(t *testing.T) {
	chunks := []llm.GroundingChunk{
		llmtest.Web("OCHA", "https://ocha.org/1"),
		llmtest.Web("", "https://reliefweb.int/2"),
		llmtest.Web("OCHA again", "https://ocha.org/1"),
		llmtest.Web("UNHCR", "https://unhcr.org/3"),
	}

	first := citation.Collect(chunks)
	second := citation.Collect(chunks)
	assert.Equal(t, first, second)
	assert.Equal(t, first, citation.Dedup(first))
	assert.Len(t, first, 3)
}

func TestCollect_DefaultTitle(t *testing.T) {
	got := citation.Collect([]llm.GroundingChunk{llmtest.Web("  ", "https://x")})
	assert.Equal(t, []model.Citation{{Title: citation.DefaultTitle, URI: "https://x"}}, got)
}

func TestCollect_EmptyOrMalformed(t *testing.T) {
	tests := []struct {
		name   string
		chunks []llm.GroundingChunk
	}{
		{name: "nil", chunks: nil},
		{name: "no web reference", chunks: []llm.GroundingChunk{{}, {}}},
		{name: "empty uri", chunks: []llm.GroundingChunk{llmtest.Web("Untitled", "")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := citation.Collect(tt.chunks)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestMerge(t *testing.T) {
	seed := []model.Citation{
		{Title: "Briefing", URI: "https://ocha.org/1", Source: "briefing"},
	}
	grounded := []model.Citation{
		{Title: "OCHA", URI: "https://ocha.org/1"},
		{Title: "WFP", URI: "https://wfp.org/2"},
	}

	got := citation.Merge(seed, grounded)
	assert.Equal(t, []model.Citation{
		{Title: "Briefing", URI: "https://ocha.org/1", Source: "briefing"},
		{Title: "WFP", URI: "https://wfp.org/2"},
	}, got)

	assert.Empty(t, citation.Merge())
}
