package alignment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Fetcher 抓取网页正文
type Fetcher func(ctx context.Context, pageURL string) (string, error)

// newReadabilityFetcher 用 readability 提取正文
func newReadabilityFetcher(client *http.Client) Fetcher {
	return func(ctx context.Context, pageURL string) (string, error) {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AuraBot/1.0)")

		res, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return "", fmt.Errorf("fetch %s: status %d", pageURL, res.StatusCode)
		}

		article, err := readability.FromReader(res.Body, u)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(article.TextContent), nil
	}
}
