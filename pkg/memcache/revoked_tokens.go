package mem

import (
	"sync"
	"time"
)

// RevokedTokenStore remembers logged-out tokens until they would have expired anyway.
type RevokedTokenStore interface {
	Revoke(token string, until time.Time)
	IsRevoked(token string) bool
}

type RevokedTokens struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *RevokedTokens) Revoke(token string, until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.data {
		if now.After(exp) {
			delete(s.data, k)
		}
	}
	if until.After(now) {
		s.data[token] = until
	}
}

func (s *RevokedTokens) IsRevoked(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exp, ok := s.data[token]
	return ok && !s.now().After(exp)
}

// Len reports entries still held, expired ones included until the next Revoke.
func (s *RevokedTokens) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
