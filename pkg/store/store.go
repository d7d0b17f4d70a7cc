// Package store keeps the authority's current game across restarts of
// the server process.
package store

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("store: no saved game")

// Record is the saved form of a game.
type Record struct {
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
}

type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, rec Record) error
	Close() error
}

// Memory keeps the record in process memory only.
type Memory struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return Record{}, ErrNotFound
	}
	return copyRecord(*m.rec), nil
}

func (m *Memory) Save(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := copyRecord(rec)
	m.rec = &c
	return nil
}

func (m *Memory) Close() error { return nil }

func copyRecord(rec Record) Record {
	out := Record{FEN: rec.FEN}
	if rec.Moves != nil {
		out.Moves = append([]string(nil), rec.Moves...)
	}
	return out
}
