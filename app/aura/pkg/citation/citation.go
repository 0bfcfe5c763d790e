// Package citation 从 grounding 元数据中提取来源，并按 URI 去重。
package citation

import (
	"strings"

	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

// DefaultTitle 来源没有标题时使用
const DefaultTitle = "Source"

// Collect 提取带网页引用的 chunk，按 URI 去重，先出现者保留，顺序不变
func Collect(chunks []llm.GroundingChunk) []model.Citation {
	out := make([]model.Citation, 0, len(chunks))
	for _, c := range chunks {
		if c.Web == nil || strings.TrimSpace(c.Web.URI) == "" {
			continue
		}
		title := c.Web.Title
		if strings.TrimSpace(title) == "" {
			title = DefaultTitle
		}
		out = append(out, model.Citation{Title: title, URI: c.Web.URI})
	}
	return Dedup(out)
}

// Dedup 按 URI 去重，source 不参与比较
func Dedup(citations []model.Citation) []model.Citation {
	seen := make(map[string]struct{}, len(citations))
	out := make([]model.Citation, 0, len(citations))
	for _, c := range citations {
		if c.URI == "" {
			continue
		}
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Merge 按参数顺序拼接多组来源后去重
func Merge(lists ...[]model.Citation) []model.Citation {
	var all []model.Citation
	for _, l := range lists {
		all = append(all, l...)
	}
	return Dedup(all)
}
