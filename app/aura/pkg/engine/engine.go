// Package engine 编排态势合成：组装提示词、调用推理服务、按结果结构严格校验并附加引用来源。
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/aura/app/aura/pkg/citation"
	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/logger"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/aura/pkg/schema"
)

// ErrInvalidInput 既没有自由文本，也没有“主题 + 至少一个区域”
var ErrInvalidInput = errors.New("invalid synthesis input")

// Input 合成输入：FreeText 非空时为报告模式，否则为主题模式
type Input struct {
	FreeText string
	Topic    string
	Regions  []string
}

// Scope 合成的范围参数
type Scope struct {
	Regions       []string
	DateRange     *model.DateRange
	ReferenceText string
	// Citations 参考文本自带的来源，排在 grounding 来源之前
	Citations []model.Citation
}

// Engine 合成编排器，本身无状态，可并发使用
type Engine struct {
	cfg      *config.Config
	reasoner llm.Reasoner
	now      func() time.Time
}

// New 创建编排器
func New(cfg *config.Config, reasoner llm.Reasoner) *Engine {
	return &Engine{cfg: cfg, reasoner: reasoner, now: time.Now}
}

// Synthesize 执行一次态势合成。失败时不返回任何部分结果，也不产生副作用
func (e *Engine) Synthesize(ctx context.Context, in Input, scope Scope) (*model.AnalysisResult, error) {
	regions := in.Regions
	if len(regions) == 0 {
		regions = scope.Regions
	}
	regions = model.CleanRegions(regions)

	topicMode := strings.TrimSpace(in.FreeText) == ""
	if topicMode && (strings.TrimSpace(in.Topic) == "" || len(regions) == 0) {
		return nil, fmt.Errorf("%w: need free text, or a topic with at least one region", ErrInvalidInput)
	}

	dr := normalizeWindow(scope.DateRange)
	prompt := analysisPrompt(in, regions, dr, scope.ReferenceText)

	logger.Log.Infof("开始态势合成: mode=%s regions=%v", mode(topicMode), regions)
	logger.Log.Debugf("合成提示词长度: %d", len(prompt))

	resp, err := e.reasoner.Generate(ctx, prompt, llm.Options{
		Model:             e.cfg.LLM.Model,
		SystemInstruction: AnalysisInstruction,
		ResponseSchema:    schema.AnalysisResult(),
		Grounding:         topicMode,
	})
	if err != nil {
		logger.Log.Errorf("态势合成调用失败: %v", err)
		return nil, llm.AsUnavailable(err)
	}

	var result model.AnalysisResult
	if err := schema.Decode(schema.AnalysisResult(), resp.Text, &result); err != nil {
		logger.Log.Errorf("态势合成结果不符合结构: %v", err)
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	result.DateRange = dr
	result.Citations = nil
	if cites := citation.Merge(scope.Citations, citation.Collect(resp.GroundingChunks)); len(cites) > 0 {
		result.Citations = cites
	}

	logger.Log.Infof("态势合成完成: title=%q risk=%s citations=%d", result.Title, result.RiskLevel, len(result.Citations))
	return &result, nil
}

// DeepDive 针对开放式主题做检索增强的跨区域研究，结果不进入归档
func (e *Engine) DeepDive(ctx context.Context, topic string, regions []string, scope Scope) (*model.DeepDiveResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: deep dive needs a topic", ErrInvalidInput)
	}
	if len(regions) == 0 {
		regions = scope.Regions
	}
	regions = model.CleanRegions(regions)

	dr := normalizeWindow(scope.DateRange)
	prompt := deepDivePrompt(topic, regions, dr, scope.ReferenceText)

	logger.Log.Infof("开始深度研究: topic=%q regions=%v", topic, regions)

	resp, err := e.reasoner.Generate(ctx, prompt, llm.Options{
		Model:             e.cfg.LLM.Model,
		SystemInstruction: DeepDiveInstruction,
		ResponseSchema:    schema.DeepDiveResult(),
		Grounding:         true,
	})
	if err != nil {
		logger.Log.Errorf("深度研究调用失败: %v", err)
		return nil, llm.AsUnavailable(err)
	}

	var result model.DeepDiveResult
	if err := schema.Decode(schema.DeepDiveResult(), resp.Text, &result); err != nil {
		logger.Log.Errorf("深度研究结果不符合结构: %v", err)
		return nil, fmt.Errorf("deep dive: %w", err)
	}

	result.Citations = citation.Merge(scope.Citations, citation.Collect(resp.GroundingChunks))
	result.Timestamp = e.now().UTC().Format(model.TimestampLayout)
	return &result, nil
}

// normalizeWindow 无效的日期窗口按未提供处理
func normalizeWindow(dr *model.DateRange) *model.DateRange {
	if dr == nil {
		return nil
	}
	n := model.NormalizeDateRange(dr)
	if n == nil {
		logger.Log.Warnf("忽略无效的日期窗口: start=%q end=%q", dr.Start, dr.End)
	}
	return n
}

func mode(topic bool) string {
	if topic {
		return "topic"
	}
	return "report"
}
