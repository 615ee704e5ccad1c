package handler

import (
	"sync"
	"time"
)

const (
	limiterDelta  = 3 * time.Second
	limiterTries  = 3
	limiterMinBan = 5 * time.Second
)

type limiterEntry struct {
	last   time.Time
	count  int
	banned bool
	banFor time.Duration
}

// rateLimiter bans users who send messages in rapid bursts. Messaging
// through an active ban doubles it up to maxBan; staying quiet for the
// ban duration lifts it.
type rateLimiter struct {
	mu      sync.Mutex
	maxBan  time.Duration
	entries map[int64]*limiterEntry
}

func newRateLimiter(maxBan time.Duration) *rateLimiter {
	return &rateLimiter{
		maxBan:  maxBan,
		entries: make(map[int64]*limiterEntry),
	}
}

// observe registers a message from the user at the given moment and
// reports whether it must be dropped. notice is true only on the
// message that triggers a ban, so the user is told exactly once.
func (r *rateLimiter) observe(id int64, now time.Time) (banned, notice bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		r.entries[id] = &limiterEntry{last: now}
		return false, false
	}

	delta := now.Sub(e.last)
	e.last = now

	if e.banned {
		if delta < e.banFor {
			e.banFor *= 2
			if e.banFor > r.maxBan {
				e.banFor = r.maxBan
			}
			return true, false
		}
		// ban served in full; forget the offender entirely
		delete(r.entries, id)
		return false, false
	}

	if delta < limiterDelta {
		e.count++
		if e.count > limiterTries {
			e.banned = true
			e.banFor = limiterMinBan
			return true, true
		}
		return false, false
	}

	// normal pacing, nothing worth remembering
	delete(r.entries, id)
	return false, false
}
