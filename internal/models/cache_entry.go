package models

import "time"

// CacheEntry is the envelope stored in the fast cache tiers
type CacheEntry struct {
	Data      []byte `json:"data"`
	CreatedAt int64  `json:"created_at"` // unix seconds
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}

// IsExpired reports whether the entry is past its TTL at the given unix time
func (e *CacheEntry) IsExpired(now int64) bool {
	return now >= e.ExpiresAt
}

// TTLSeconds is the expiry every fast-cache level applies for ttl: whole
// seconds rounded down, never less than one.
func TTLSeconds(ttl time.Duration) int64 {
	secs := int64(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// CacheLevel identifies which fast-cache tier served a read
type CacheLevel string

const (
	CacheLevelL1   CacheLevel = "L1"
	CacheLevelL2   CacheLevel = "L2"
	CacheLevelMiss CacheLevel = "MISS"
)
