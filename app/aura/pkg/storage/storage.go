// Package storage 提供归档使用的键值存储端口：每个键对应一段原始字节，写入为整体替换。
package storage

import (
	"context"
	"fmt"

	"github.com/iWorld-y/aura/app/aura/pkg/config"
)

// Blob 键值存储。Load 在键不存在时返回 nil, nil
type Blob interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open 根据配置打开存储后端
func Open(cfg config.ArchiveConfig) (Blob, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		f, err := NewFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "sqlite":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(cfg.DB)
	case "redis":
		r, err := NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown archive backend: %s", cfg.Backend)
	}
}
