package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// Limited 在每次调用前等待限流器，不做重试
type Limited struct {
	next    Reasoner
	limiter *rate.Limiter
}

// NewLimited Limit 设置为 RPM/60，Burst 设置为 QPS
func NewLimited(next Reasoner, qps, rpm int) *Limited {
	if qps <= 0 {
		qps = 1
	}
	if rpm <= 0 {
		rpm = 60
	}
	limit := rate.Limit(float64(rpm) / 60.0)
	return &Limited{next: next, limiter: rate.NewLimiter(limit, qps)}
}

var _ Reasoner = (*Limited)(nil)

// Generate implements Reasoner
func (l *Limited) Generate(ctx context.Context, prompt string, opts Options) (*Response, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Generate(ctx, prompt, opts)
}
