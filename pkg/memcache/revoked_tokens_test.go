package mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokedTokens(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := NewRevokedTokens()
	store.now = func() time.Time { return now }

	store.Revoke("a", now.Add(time.Hour))
	store.Revoke("stale", now.Add(-time.Minute))

	assert.True(t, store.IsRevoked("a"))
	assert.False(t, store.IsRevoked("stale"), "already expired tokens are not stored")
	assert.False(t, store.IsRevoked("b"))
	assert.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Hour)
	assert.False(t, store.IsRevoked("a"))

	store.Revoke("c", now.Add(time.Hour))
	assert.Equal(t, 1, store.Len(), "expired entries are swept on revoke")
}

func TestRevokedTokens_Concurrent(t *testing.T) {
	store := NewRevokedTokens()
	until := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := string(rune('a' + i%26))
			store.Revoke(token, until)
			store.IsRevoked(token)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, store.Len())
}
