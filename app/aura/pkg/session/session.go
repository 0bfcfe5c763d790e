// Package session 跟踪每个工作区的合成请求状态：Idle -> Pending -> Succeeded | Failed。
// 同一 key 上新的 Begin 会使旧的请求失效，旧请求稍后返回的结果被丢弃。
package session

import (
	"sync"
	"time"

	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

// Status 运行状态
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText 以小写名称序列化
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State 某个 key 的当前状态。失败时 Report 仍保留最近一次成功的结果
type State struct {
	Status    Status             `json:"status"`
	Report    *model.SavedReport `json:"report,omitempty"`
	Error     string             `json:"error,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Ticket 标识一次请求
type Ticket struct {
	Key string
	seq uint64
}

type run struct {
	seq   uint64
	state State
}

// Tracker 并发安全的状态表
type Tracker struct {
	mu   sync.Mutex
	seq  uint64
	runs map[string]*run
	now  func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{runs: make(map[string]*run), now: time.Now}
}

// Begin 将 key 置为 Pending 并返回新票据，之前的票据全部失效
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	r, ok := t.runs[key]
	if !ok {
		r = &run{}
		t.runs[key] = r
	}
	r.seq = t.seq
	r.state.Status = Pending
	r.state.Error = ""
	r.state.UpdatedAt = t.now()
	return Ticket{Key: key, seq: t.seq}
}

// Succeed 记录成功结果，票据已失效时返回 false
func (t *Tracker) Succeed(ticket Ticket, report *model.SavedReport) bool {
	return t.finish(ticket, func(s *State) {
		s.Status = Succeeded
		s.Report = report
		s.Error = ""
	})
}

// Fail 记录失败，保留上一次成功的报告
func (t *Tracker) Fail(ticket Ticket, err error) bool {
	return t.finish(ticket, func(s *State) {
		s.Status = Failed
		if err != nil {
			s.Error = err.Error()
		}
	})
}

// Current 判断票据是否仍是该 key 上最新且未完成的请求
func (t *Tracker) Current(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[ticket.Key]
	return ok && r.seq == ticket.seq && r.state.Status == Pending
}

func (t *Tracker) finish(ticket Ticket, apply func(*State)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[ticket.Key]
	if !ok || r.seq != ticket.seq || r.state.Status != Pending {
		return false
	}
	apply(&r.state)
	r.state.UpdatedAt = t.now()
	return true
}

// State 返回 key 的状态快照，未知 key 为 Idle
func (t *Tracker) State(key string) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.runs[key]
	if !ok {
		return State{Status: Idle}
	}
	return r.state
}
