package services

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

const (
	rateWindow  = 10 * time.Minute
	maxPerAddr  = 8
	maxPerPhone = 4
)

// rateEntry is one fixed-window counter. It is created on the first event in
// a window and discarded by the lazy sweep once the window has elapsed.
type rateEntry struct {
	count     int
	firstSeen time.Time
}

// RateLimitedError carries the human-readable denial reason. Both variants
// map to the same retry-later outcome, but callers can tell them apart.
type RateLimitedError struct {
	Reason string
}

func (e *RateLimitedError) Error() string { return e.Reason }

func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// RateLimiter gates order submissions per client address and per phone
// number before any write is attempted. The phone is never stored raw; only
// its SHA-256 digest enters the keyspace. All counter updates happen under
// one mutex so concurrent bursts from the same key cannot under-count.
type RateLimiter struct {
	mu     sync.Mutex
	addrs  map[string]*rateEntry
	phones map[string]*rateEntry

	window      time.Duration
	maxPerAddr  int
	maxPerPhone int
	now         func() time.Time // injectable for tests
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		addrs:       make(map[string]*rateEntry),
		phones:      make(map[string]*rateEntry),
		window:      rateWindow,
		maxPerAddr:  maxPerAddr,
		maxPerPhone: maxPerPhone,
		now:         time.Now,
	}
}

// Allow records one submission event for the address and phone and reports
// whether it is admitted. The event that pushes a counter past its cap is
// itself denied, and stays recorded: once over the cap, the window never
// gives an allow back.
func (l *RateLimiter) Allow(clientAddr, phone string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	sweepExpired(l.addrs, now, l.window)
	sweepExpired(l.phones, now, l.window)

	if !updateAndCheck(l.addrs, clientAddr, l.maxPerAddr, now, l.window) {
		return &RateLimitedError{Reason: "Too many orders from this IP. Please try again later."}
	}
	if !updateAndCheck(l.phones, PhoneDigest(phone), l.maxPerPhone, now, l.window) {
		return &RateLimitedError{Reason: "Too many orders for this phone number. Please wait before retrying."}
	}
	return nil
}

func updateAndCheck(m map[string]*rateEntry, key string, max int, now time.Time, window time.Duration) bool {
	existing, ok := m[key]
	if !ok || now.Sub(existing.firstSeen) > window {
		m[key] = &rateEntry{count: 1, firstSeen: now}
		return true
	}
	existing.count++
	return existing.count <= max
}

func sweepExpired(m map[string]*rateEntry, now time.Time, window time.Duration) {
	for key, entry := range m {
		if now.Sub(entry.firstSeen) > window {
			delete(m, key)
		}
	}
}

// PhoneDigest is the one-way key under which a phone number is rate limited.
func PhoneDigest(phone string) string {
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])
}
