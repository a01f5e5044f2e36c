// Package capture observes submit intent on a live page and emits one
// normalized CapturedLogin per real submission attempt. It reuses the detect
// classifier for field extraction, deduplicates duplicate triggers inside a
// time window keyed by content fingerprint, and honors domain and attribute
// exclusion rules before any capture logic runs.
//
// A Monitor is single-threaded by contract: the host delivers events on one
// tick (DOM event loop, main-thread dispatch), so no internal locking is
// needed. All state is instance-owned and fully discarded by Destroy.
package capture

import "time"

// CapturedLogin is the normalized result of one accepted submission.
// Immutable once emitted; delivered to every registered callback exactly
// once per distinct submission.
type CapturedLogin struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	URL        string    `json:"url"`
	Domain     string    `json:"domain"`
	FaviconURL string    `json:"favicon_url,omitempty"`
	At         time.Time `json:"at"`
}
