package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/aura/app/aura/pkg/logger"
)

// OpenAI 兼容 OpenAI 协议的推理后端（DeepSeek、Qwen 等）。
// 该协议没有原生 grounding，输出约束以 JSON Schema 文本写入 system 消息。
type OpenAI struct {
	chatModel model.ChatModel
}

// NewOpenAI 创建 OpenAI 兼容后端
func NewOpenAI(ctx context.Context, baseURL, apiKey, modelName string) (*OpenAI, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &OpenAI{chatModel: chatModel}, nil
}

// NewOpenAIWithModel 使用已有的 eino ChatModel
func NewOpenAIWithModel(cm model.ChatModel) *OpenAI {
	return &OpenAI{chatModel: cm}
}

var _ Reasoner = (*OpenAI)(nil)

// Generate implements Reasoner
func (o *OpenAI) Generate(ctx context.Context, prompt string, opts Options) (*Response, error) {
	if opts.Grounding {
		logger.Log.Warn("openai 后端不支持 grounding，将仅依赖提示词中的上下文")
	}

	system, err := systemMessage(opts)
	if err != nil {
		return nil, err
	}

	var messages []*schema.Message
	if system != "" {
		messages = append(messages, &schema.Message{Role: schema.System, Content: system})
	}
	messages = append(messages, &schema.Message{Role: schema.User, Content: prompt})

	var callOpts []model.Option
	if opts.Model != "" {
		callOpts = append(callOpts, model.WithModel(opts.Model))
	}

	resp, err := o.chatModel.Generate(ctx, messages, callOpts...)
	if err != nil {
		return nil, Unavailable("openai", err)
	}
	return &Response{Text: resp.Content}, nil
}

func systemMessage(opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString(opts.SystemInstruction)
	if opts.ResponseSchema != nil {
		desc, err := json.Marshal(opts.ResponseSchema)
		if err != nil {
			return "", fmt.Errorf("marshal response schema: %w", err)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("You are a JSON generator. Respond ONLY with a single JSON object that satisfies this schema ")
		sb.WriteString("(every field listed under \"required\" must be present, enum values must match exactly). ")
		sb.WriteString("Do not include markdown formatting or explanations.\n")
		sb.Write(desc)
	}
	return sb.String(), nil
}
