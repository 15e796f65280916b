package webhook

import (
	"sync"
	"time"
)

// commentDeduper drops redelivered comment events within a TTL window.
type commentDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

func newCommentDeduper(ttl time.Duration) *commentDeduper {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &commentDeduper{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// markIfNew returns true if key has not been seen within the TTL.
// When it returns true, the key is recorded with an expiry timestamp.
func (d *commentDeduper) markIfNew(key string) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for k, expiry := range d.entries {
		if now.After(expiry) {
			delete(d.entries, k)
		}
	}

	if expiry, ok := d.entries[key]; ok && now.Before(expiry) {
		return false
	}

	d.entries[key] = now.Add(d.ttl)
	return true
}
