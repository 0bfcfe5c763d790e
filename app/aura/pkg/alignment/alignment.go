// Package alignment 将参考文本裁剪到所选区域和日期窗口，或从公开来源生成新的范围简报。
// 两个操作都不触及归档。
package alignment

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/aura/app/aura/pkg/citation"
	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/logger"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/aura/pkg/search"
)

var (
	// ErrNoRegions FetchScoped 至少需要一个区域
	ErrNoRegions = errors.New("at least one region is required")
	// ErrEmptyBriefing 推理服务返回了空简报
	ErrEmptyBriefing = errors.New("empty briefing")
)

const (
	resultsPerRegion = 5
	// 摘要短于该长度时抓取原文
	minExcerptLen = 300
	maxExcerptLen = 6000
	fetchWorkers  = 4
)

// ScopedContext 范围简报及其来源
type ScopedContext struct {
	Text      string           `json:"text"`
	Citations []model.Citation `json:"citations"`
}

// Service 上下文对齐服务
type Service struct {
	cfg      *config.Config
	reasoner llm.Reasoner
	searcher search.Searcher
	fetch    Fetcher
}

// Option 服务选项
type Option func(*Service)

// WithFetcher 替换原文抓取方式
func WithFetcher(f Fetcher) Option {
	return func(s *Service) { s.fetch = f }
}

// New 创建服务，searcher 可以为 nil，此时 FetchScoped 只依赖模型的 grounding 检索
func New(cfg *config.Config, reasoner llm.Reasoner, searcher search.Searcher, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		reasoner: reasoner,
		searcher: searcher,
		fetch:    newReadabilityFetcher(&http.Client{Timeout: 30 * time.Second}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Align 只保留与区域和日期窗口相关的段落。调用失败或返回为空时原样返回 raw
func (s *Service) Align(ctx context.Context, raw string, regions []string, dr *model.DateRange) string {
	regions = model.CleanRegions(regions)
	window := model.NormalizeDateRange(dr)
	if strings.TrimSpace(raw) == "" || (len(regions) == 0 && window == nil) {
		return raw
	}

	resp, err := s.reasoner.Generate(ctx, alignPrompt(raw, regions, window), llm.Options{
		Model:             s.cfg.LLM.FastModel,
		SystemInstruction: alignInstruction,
	})
	if err != nil {
		logger.Log.Warnf("上下文对齐失败，保留原文: %v", err)
		return raw
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		logger.Log.Warn("上下文对齐返回为空，保留原文")
		return raw
	}

	logger.Log.Infof("上下文已对齐: regions=%v %d -> %d 字符", regions, len(raw), len(text))
	return text
}

// FetchScoped 为所选区域生成新的参考简报。配置了搜索时先检索再由模型归纳，
// 否则（或检索无结果时）由模型自行 grounding。任何调用失败都直接返回错误
func (s *Service) FetchScoped(ctx context.Context, regions []string, dr *model.DateRange) (*ScopedContext, error) {
	regions = model.CleanRegions(regions)
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	window := model.NormalizeDateRange(dr)
	if dr != nil && window == nil {
		logger.Log.Warnf("忽略无效的日期窗口: start=%q end=%q", dr.Start, dr.End)
	}

	if s.searcher != nil {
		excerpts, err := s.gather(ctx, regions, window)
		if err != nil {
			return nil, err
		}
		if len(excerpts) > 0 {
			return s.condense(ctx, regions, window, excerpts)
		}
		logger.Log.Warnf("检索无结果，改用模型 grounding: regions=%v", regions)
	}

	resp, err := s.reasoner.Generate(ctx, briefingPrompt(regions, window), llm.Options{
		Model:             s.cfg.LLM.FastModel,
		SystemInstruction: briefingInstruction,
		Grounding:         true,
	})
	if err != nil {
		return nil, llm.AsUnavailable(err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, ErrEmptyBriefing
	}
	return &ScopedContext{Text: text, Citations: citation.Collect(resp.GroundingChunks)}, nil
}

func (s *Service) condense(ctx context.Context, regions []string, dr *model.DateRange, excerpts []excerpt) (*ScopedContext, error) {
	seed := make([]model.Citation, 0, len(excerpts))
	for _, ex := range excerpts {
		seed = append(seed, model.Citation{Title: ex.title, URI: ex.url, Source: ex.source})
	}

	resp, err := s.reasoner.Generate(ctx, condensePrompt(regions, dr, excerpts), llm.Options{
		Model:             s.cfg.LLM.FastModel,
		SystemInstruction: briefingInstruction,
	})
	if err != nil {
		return nil, llm.AsUnavailable(err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, ErrEmptyBriefing
	}

	logger.Log.Infof("范围简报已生成: regions=%v sources=%d", regions, len(excerpts))
	return &ScopedContext{
		Text:      text,
		Citations: citation.Merge(seed, citation.Collect(resp.GroundingChunks)),
	}, nil
}

type excerpt struct {
	region    string
	title     string
	url       string
	source    string
	published string
	text      string
}

// gather 按区域并发检索，单个区域失败只记录日志；结果按区域顺序排列并按 URL 去重
func (s *Service) gather(ctx context.Context, regions []string, dr *model.DateRange) ([]excerpt, error) {
	perRegion := make([][]search.Result, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		g.Go(func() error {
			req := &search.Request{
				Query:      region + " humanitarian situation",
				Topic:      "news",
				MaxResults: resultsPerRegion,
				Keywords:   []string{region},
				Domains:    s.cfg.Search.Domains,
			}
			if dr != nil {
				req.StartDate, req.EndDate = dr.Start, dr.End
			}
			resp, err := s.searcher.Search(gctx, req)
			if err != nil {
				logger.Log.Warnf("检索失败 [%s]: %v", region, err)
				return nil
			}
			perRegion[i] = resp.Results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var excerpts []excerpt
	seen := make(map[string]struct{})
	for i, results := range perRegion {
		for _, r := range results {
			if r.URL == "" {
				continue
			}
			if _, ok := seen[r.URL]; ok {
				continue
			}
			seen[r.URL] = struct{}{}
			title := r.Title
			if title == "" {
				title = citation.DefaultTitle
			}
			excerpts = append(excerpts, excerpt{
				region:    regions[i],
				title:     title,
				url:       r.URL,
				source:    "search",
				published: r.PublishedDate,
				text:      strings.TrimSpace(r.Text()),
			})
		}
	}

	s.enrich(ctx, excerpts)
	return excerpts, nil
}

// enrich 摘要过短时抓取原文，失败则保留摘要
func (s *Service) enrich(ctx context.Context, excerpts []excerpt) {
	var g errgroup.Group
	g.SetLimit(fetchWorkers)
	for i := range excerpts {
		if len(excerpts[i].text) >= minExcerptLen {
			continue
		}
		g.Go(func() error {
			body, err := s.fetch(ctx, excerpts[i].url)
			if err != nil {
				logger.Log.Debugf("原文抓取失败，使用摘要 [%s]: %v", excerpts[i].url, err)
				return nil
			}
			if len(body) > len(excerpts[i].text) {
				excerpts[i].text = body
			}
			return nil
		})
	}
	_ = g.Wait()

	for i := range excerpts {
		excerpts[i].text = truncate(excerpts[i].text, maxExcerptLen)
	}
}

// truncate 按字节截断，不切断 UTF-8 字符
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
