// Package archive 维护报告历史：单键存储、最新在前、最多保留 MaxReports 条。
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/aura/app/aura/pkg/config"
	"github.com/iWorld-y/aura/app/aura/pkg/logger"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
	"github.com/iWorld-y/aura/app/aura/pkg/storage"
)

// MaxReports 归档上限，超出部分按时间从旧到新丢弃
const MaxReports = 50

// ErrIDCollision 生成的报告 ID 与已有记录重复
var ErrIDCollision = errors.New("report id collision")

const maxIDAttempts = 5

// Store 归档存储。所有操作整体读改写同一个键，进程内由互斥锁串行化
type Store struct {
	blob  storage.Blob
	key   string
	newID func() string
	now   func() time.Time

	mu sync.Mutex
}

// Option 归档选项
type Option func(*Store)

// WithKey 指定存储键
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDGenerator 替换报告 ID 生成器
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock 替换时钟
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// NewStore 创建归档
func NewStore(blob storage.Blob, opts ...Option) *Store {
	s := &Store{
		blob:  blob,
		key:   config.DefaultArchiveKey,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append 生成 ID 和时间戳后插入到最前，截断到 MaxReports 条并整体写回
func (s *Store) Append(ctx context.Context, result *model.AnalysisResult) (*model.SavedReport, error) {
	if result == nil {
		return nil, fmt.Errorf("append: nil result")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.allocateID(reports)
	if err != nil {
		return nil, err
	}
	report := model.SavedReport{
		AnalysisResult: *result,
		ReportID:       id,
		Timestamp:      s.now().UTC().Format(model.TimestampLayout),
	}

	reports = append([]model.SavedReport{report}, reports...)
	if len(reports) > MaxReports {
		logger.Log.Debugf("归档超过上限，丢弃 %d 条最旧的报告", len(reports)-MaxReports)
		reports = reports[:MaxReports]
	}
	if err := s.write(ctx, reports); err != nil {
		return nil, err
	}

	logger.Log.Infof("报告已归档: id=%s title=%q", report.ReportID, report.Title)
	return &report, nil
}

// LoadAll 返回全部报告（最新在前）。存储为空、损坏或不可读时返回空列表
func (s *Store) LoadAll(ctx context.Context) []model.SavedReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.read(ctx)
	if err != nil {
		logger.Log.Warnf("读取归档失败，按空归档处理: %v", err)
		return []model.SavedReport{}
	}
	return reports
}

// Get 按 ID 查找报告
func (s *Store) Get(ctx context.Context, id string) (*model.SavedReport, bool) {
	for _, r := range s.LoadAll(ctx) {
		if r.ReportID == id {
			return &r, true
		}
	}
	return nil, false
}

// Remove 删除指定报告，不存在时不做任何写入
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.read(ctx)
	if err != nil {
		return err
	}

	kept := make([]model.SavedReport, 0, len(reports))
	for _, r := range reports {
		if r.ReportID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reports) {
		logger.Log.Debugf("待删除的报告不存在: id=%s", id)
		return nil
	}
	return s.write(ctx, kept)
}

// Clear 清空归档
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blob.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear archive: %w", err)
	}
	logger.Log.Info("归档已清空")
	return nil
}

// read 读取归档；内容损坏时记录告警并视为空，只有存储本身的读取错误才返回
func (s *Store) read(ctx context.Context) ([]model.SavedReport, error) {
	data, err := s.blob.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}
	if len(data) == 0 {
		return []model.SavedReport{}, nil
	}

	var reports []model.SavedReport
	if err := json.Unmarshal(data, &reports); err != nil {
		logger.Log.WithField("key", s.key).Warnf("归档内容损坏，按空归档处理: %v", err)
		return []model.SavedReport{}, nil
	}
	if reports == nil {
		reports = []model.SavedReport{}
	}
	return reports, nil
}

func (s *Store) write(ctx context.Context, reports []model.SavedReport) error {
	data, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}
	if err := s.blob.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	return nil
}

func (s *Store) allocateID(existing []model.SavedReport) (string, error) {
	used := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		used[r.ReportID] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if _, dup := used[id]; !dup && id != "" {
			return id, nil
		}
	}
	return "", ErrIDCollision
}
