// Package search 定义开源情报检索的通用接口，FetchScoped 通过它获取区域相关的公开报道。
package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	Topic             string // "news" or "general"
	MaxResults        int
	IncludeRawContent bool
	StartDate         string // Format: YYYY-MM-DD
	EndDate           string // Format: YYYY-MM-DD
	// Keywords 本地过滤的提供方（如 RSS）要求命中的关键词，任一命中即可
	Keywords []string
	// Domains 只接受这些站点及其子域名的结果，为空不限制
	Domains []string
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

// Text 返回结果中最完整的正文
func (r Result) Text() string {
	if r.RawContent != "" {
		return r.RawContent
	}
	return r.Content
}
