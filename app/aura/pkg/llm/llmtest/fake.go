// Package llmtest 提供测试用的推理服务替身和标准响应样本
package llmtest

import (
	"context"
	"sync"

	"github.com/iWorld-y/aura/app/aura/pkg/llm"
)

// Call 记录一次调用
type Call struct {
	Prompt string
	Opts   llm.Options
}

// Fake 按顺序返回预设响应；Responses 用尽后重复最后一个
type Fake struct {
	Responses []*llm.Response
	Err       error

	mu    sync.Mutex
	calls []Call
}

// NewFake 返回固定文本的替身
func NewFake(text string, chunks ...llm.GroundingChunk) *Fake {
	return &Fake{Responses: []*llm.Response{{Text: text, GroundingChunks: chunks}}}
}

// NewFailing 返回始终失败的替身
func NewFailing(err error) *Fake {
	return &Fake{Err: err}
}

// Generate implements llm.Reasoner
func (f *Fake) Generate(ctx context.Context, prompt string, opts llm.Options) (*llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.calls)
	f.calls = append(f.calls, Call{Prompt: prompt, Opts: opts})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Responses) == 0 {
		return &llm.Response{}, nil
	}
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	resp := *f.Responses[idx]
	return &resp, nil
}

// Calls 返回调用记录副本
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Web 构造网页 grounding 来源
func Web(title, uri string) llm.GroundingChunk {
	return llm.GroundingChunk{Web: &llm.WebChunk{Title: title, URI: uri}}
}
