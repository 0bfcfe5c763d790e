package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqlQueries 各方言的语句
type sqlQueries struct {
	create string
	load   string
	save   string
	delete string
}

// sqlBlob 基于 database/sql 的单表键值存储
type sqlBlob struct {
	db *sql.DB
	q  sqlQueries
}

func newSQLBlob(ctx context.Context, db *sql.DB, q sqlQueries) (*sqlBlob, error) {
	if _, err := db.ExecContext(ctx, q.create); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &sqlBlob{db: db, q: q}, nil
}

func (s *sqlBlob) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.q.load, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *sqlBlob) Save(ctx context.Context, key string, data []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.q.save, key, data); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: %v", err, rerr)
		}
		return err
	}
	return tx.Commit()
}

func (s *sqlBlob) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q.delete, key)
	return err
}

func (s *sqlBlob) Close() error {
	return s.db.Close()
}
