package capture

import (
	"crypto/sha256"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// fingerprint hashes the normalized submission content. Two triggers with
// the same domain, username and password inside the window are one
// submission (button click plus native submit firing for the same action).
func fingerprint(domain, username, password string) string {
	h := sha256.Sum256([]byte(domain + "\x00" + username + "\x00" + password))
	return fmt.Sprintf("%x", h[:16])
}

// debouncer is a bounded, instance-owned fingerprint → last-seen map. It is
// an LRU rather than a plain map so multiple frames each hold a small cache
// that cannot grow with page activity; entries age out by wall clock, not by
// a timer, so Destroy leaves nothing pending.
type debouncer struct {
	window time.Duration
	seen   *lru.Cache[string, time.Time]
	now    func() time.Time
}

func newDebouncer(window time.Duration, maxEntries int) *debouncer {
	// Size is validated by config defaults; lru.New only fails on size<=0.
	cache, _ := lru.New[string, time.Time](maxEntries)
	return &debouncer{
		window: window,
		seen:   cache,
		now:    time.Now,
	}
}

// shouldEmit records key and reports whether it is outside the dedup
// window. A fresh or expired key always re-arms the window.
func (d *debouncer) shouldEmit(key string) bool {
	now := d.now()
	if last, ok := d.seen.Get(key); ok && now.Sub(last) < d.window {
		return false
	}
	d.seen.Add(key, now)
	return true
}

func (d *debouncer) reset() {
	d.seen.Purge()
}
