package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/aura/app/aura/pkg/config"
)

var postgresQueries = sqlQueries{
	create: `CREATE TABLE IF NOT EXISTS aura_kv (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	load: `SELECT value FROM aura_kv WHERE key = $1`,
	save: `INSERT INTO aura_kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	delete: `DELETE FROM aura_kv WHERE key = $1`,
}

// NewPostgres 连接 PostgreSQL 并确保表存在
func NewPostgres(cfg config.DBConfig) (Blob, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	s, err := newSQLBlob(ctx, db, postgresQueries)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
