// Package feed 以 RSS/Atom 订阅源（如 ReliefWeb、OCHA）作为检索后端，按关键词和日期窗口本地过滤。
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/aura/app/aura/pkg/logger"
	"github.com/iWorld-y/aura/app/aura/pkg/search"
)

const defaultMaxResults = 10

// Client 订阅源检索客户端
type Client struct {
	urls   []string
	parser *gofeed.Parser
}

// NewClient 创建订阅源客户端，timeout 单位为秒
func NewClient(urls []string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: t}
	return &Client{urls: urls, parser: fp}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 依次拉取所有订阅源并过滤条目，单个源失败只记录日志
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	start, end, err := window(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	keywords := req.Keywords
	if len(keywords) == 0 && req.Query != "" {
		keywords = []string{req.Query}
	}
	limit := req.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}

	var (
		results []search.Result
		failed  int
	)
	for _, u := range c.urls {
		feed, err := c.parser.ParseURLWithContext(u, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Log.Warnf("解析订阅源失败 [%s]: %v", u, err)
			failed++
			continue
		}
		logger.Log.Debugf("订阅源 %s 共 %d 条", feed.Title, len(feed.Items))

		for _, item := range feed.Items {
			if len(results) >= limit {
				break
			}
			if !matches(item, keywords) || !inWindow(item, start, end) {
				continue
			}
			results = append(results, toResult(item))
		}
	}
	if failed == len(c.urls) && failed > 0 {
		return nil, fmt.Errorf("all %d feeds failed", failed)
	}

	return &search.Response{Results: results}, nil
}

func toResult(item *gofeed.Item) search.Result {
	r := search.Result{
		Title:      item.Title,
		URL:        item.Link,
		Content:    item.Description,
		RawContent: item.Content,
	}
	if t := published(item); t != nil {
		r.PublishedDate = t.UTC().Format(time.DateOnly)
	}
	return r
}

func matches(item *gofeed.Item, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(item.Title + "\n" + item.Description + "\n" + item.Content)
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// inWindow 设置了时间窗口时，没有日期的条目一律排除
func inWindow(item *gofeed.Item, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	t := published(item)
	if t == nil {
		return false
	}
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

func published(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// window 解析 YYYY-MM-DD 边界，结束日期包含当天
func window(startDate, endDate string) (start, end *time.Time, err error) {
	if startDate != "" {
		t, err := time.Parse(time.DateOnly, startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.Parse(time.DateOnly, endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		t = t.Add(24*time.Hour - time.Millisecond)
		end = &t
	}
	return start, end, nil
}
