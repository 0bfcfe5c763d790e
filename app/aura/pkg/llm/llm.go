// Package llm 抽象外部推理服务：输入提示词与输出约束，返回文本及可选的 grounding 来源。
package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrCollaboratorUnavailable 推理服务调用本身失败（网络、超时、配额）
var ErrCollaboratorUnavailable = errors.New("reasoning collaborator unavailable")

// Options 单次调用选项
type Options struct {
	// Model 为空时使用后端的默认模型
	Model             string
	SystemInstruction string
	// ResponseSchema 非空时要求模型输出 JSON
	ResponseSchema *genai.Schema
	// Grounding 开启检索增强，来源通过 Response.GroundingChunks 返回
	Grounding bool
}

// WebChunk 检索到的网页来源
type WebChunk struct {
	Title string
	URI   string
}

// GroundingChunk 单条 grounding 元数据，Web 为空表示非网页来源
type GroundingChunk struct {
	Web *WebChunk
}

// Response 推理服务的原始响应
type Response struct {
	Text            string
	GroundingChunks []GroundingChunk
}

// Reasoner 推理服务接口
type Reasoner interface {
	Generate(ctx context.Context, prompt string, opts Options) (*Response, error)
}

// Unavailable 将底层错误包装为 ErrCollaboratorUnavailable
func Unavailable(provider string, err error) error {
	return fmt.Errorf("%s: %w", provider, errors.Join(ErrCollaboratorUnavailable, err))
}

// AsUnavailable 未标记的调用错误归为 ErrCollaboratorUnavailable，context 错误原样返回
func AsUnavailable(err error) error {
	if err == nil ||
		errors.Is(err, ErrCollaboratorUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Unavailable("reasoner", err)
}
