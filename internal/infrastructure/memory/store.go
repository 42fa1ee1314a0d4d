// Package memory keeps users and posts in process memory. It backs STORE=memory
// and the router tests; contents are lost on restart.
package memory

import (
	"context"
	"sync"
	"time"
)

type Store struct {
	mu sync.RWMutex

	users   map[string]*userRecord
	byEmail map[string]string

	posts   map[string]*postRecord
	byTitle map[string]string

	seq int64
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*userRecord),
		byEmail: make(map[string]string),
		posts:   make(map[string]*postRecord),
		byTitle: make(map[string]string),
		now:     time.Now,
	}
}

// Ping reports readiness to the health checker.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Posts() *PostRepository {
	return &PostRepository{store: s}
}

// nextSeq must be called with mu held for writing.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
