package auth

import (
	"sync"
	"time"
)

const (
	maxFailures   = 5
	failureWindow = time.Minute
)

// loginLimiter throttles repeated failed logins per email. Successful logins
// clear the counter.
type loginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	now      func() time.Time
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (l *loginLimiter) blocked(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(email)) >= maxFailures
}

func (l *loginLimiter) fail(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email] = append(l.prune(email), l.now())
}

func (l *loginLimiter) reset(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, email)
}

// prune drops failures outside the window. Caller holds the lock.
func (l *loginLimiter) prune(email string) []time.Time {
	cutoff := l.now().Add(-failureWindow)
	kept := l.failures[email][:0]
	for _, t := range l.failures[email] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, email)
		return nil
	}
	l.failures[email] = kept
	return kept
}
