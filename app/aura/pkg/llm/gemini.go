package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/iWorld-y/aura/app/aura/pkg/logger"
)

// Gemini 基于 Google GenAI SDK 的推理后端，支持 responseSchema 与 Google Search grounding
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini 创建 Gemini 后端
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

var _ Reasoner = (*Gemini)(nil)

// Generate implements Reasoner
func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (*Response, error) {
	model := opts.Model
	if model == "" {
		model = g.model
	}

	cfg := &genai.GenerateContentConfig{}
	if opts.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemInstruction, genai.RoleUser)
	}
	if opts.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = opts.ResponseSchema
	}
	if opts.Grounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, Unavailable("gemini", err)
	}

	out := &Response{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		gm := resp.Candidates[0].GroundingMetadata
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil {
				continue
			}
			gc := GroundingChunk{}
			if chunk.Web != nil {
				gc.Web = &WebChunk{Title: chunk.Web.Title, URI: chunk.Web.URI}
			}
			out.GroundingChunks = append(out.GroundingChunks, gc)
		}
		logger.Log.Debugf("[Gemini] grounding sources=%d queries=%v", len(out.GroundingChunks), gm.WebSearchQueries)
	}
	return out, nil
}
