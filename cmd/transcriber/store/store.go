package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one completed transcription, keyed by the content hash of the
// audio so re-runs of the same file with the same model can be skipped.
type Record struct {
	ID            string
	Name          string
	Blake3Hash    string
	Model         string
	Language      string
	Duration      float64
	SegmentsCount int
	CreatedAt     time.Time
}

type Store struct {
	db *sql.DB
}

const schema = `
create table if not exists transcriptions (
	id text primary key,
	name text not null,
	blake3_hash text not null,
	model text not null,
	language text not null,
	duration real not null,
	segments_count integer not null,
	created_at timestamp not null,
	unique (blake3_hash, model)
);`

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("invalid path: should not be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the record for the given content hash and model, or
// found=false when that audio has not been transcribed yet.
func (s *Store) Lookup(ctx context.Context, hash, model string) (Record, bool, error) {
	var rec Record
	err := s.db.QueryRowContext(ctx,
		`select id, name, blake3_hash, model, language, duration, segments_count, created_at
		 from transcriptions where blake3_hash = $1 and model = $2`,
		hash, model,
	).Scan(&rec.ID, &rec.Name, &rec.Blake3Hash, &rec.Model, &rec.Language,
		&rec.Duration, &rec.SegmentsCount, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to get transcription by hash: %w", err)
	}

	return rec, true, nil
}

func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`insert into transcriptions (id, name, blake3_hash, model, language, duration, segments_count, created_at)
		 values ($1, $2, $3, $4, $5, $6, $7, $8)
		 on conflict do nothing`,
		rec.ID, rec.Name, rec.Blake3Hash, rec.Model, rec.Language,
		rec.Duration, rec.SegmentsCount, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to persist transcription: %w", err)
	}

	return nil
}
