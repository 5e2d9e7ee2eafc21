// Package ratelimit composes the two throttles applied to attesting
// actors: a store-backed cooldown between successful attestations and an
// in-memory burst counter over a short window. Both are scoped to the
// actor, never the recipient. Privileged actors bypass the package
// entirely — the ledger service simply does not call it for them.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heartmarshall/vouchd/internal/config"
	"github.com/heartmarshall/vouchd/internal/domain"
)

type cooldownStore interface {
	Get(ctx context.Context, actor domain.MemberID) (*domain.Cooldown, error)
	Touch(ctx context.Context, actor domain.MemberID, at time.Time) error
}

// Limiter enforces the attestation rate policy for one process. The burst
// state is process-local and deliberately not persisted: a restart simply
// forgets in-flight attempts, which errs on the permissive side.
type Limiter struct {
	cooldowns cooldownStore
	cooldown  time.Duration
	limit     int
	window    time.Duration

	now   func() time.Time
	after func(d time.Duration, fn func())

	mu       sync.Mutex
	inflight map[domain.MemberID]int
}

// New creates a Limiter from the ledger policy configuration.
func New(cooldowns cooldownStore, cfg config.LedgerConfig) *Limiter {
	return &Limiter{
		cooldowns: cooldowns,
		cooldown:  cfg.CooldownDuration,
		limit:     cfg.BurstLimit,
		window:    cfg.BurstWindow,
		now:       time.Now,
		after:     func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		inflight:  make(map[domain.MemberID]int),
	}
}

// Acquire admits or rejects one attestation attempt by the actor.
//
// The burst counter is a decay counter, not a token bucket: the decrement
// is scheduled at submission time and always fires after the window,
// whatever the attempt's outcome. Rejections return *domain.RateLimitedError
// with the wait the actor still has to sit out.
func (l *Limiter) Acquire(ctx context.Context, actor domain.MemberID) error {
	l.mu.Lock()
	if l.inflight[actor] >= l.limit {
		l.mu.Unlock()
		return &domain.RateLimitedError{RetryAfter: l.window}
	}
	l.inflight[actor]++
	l.mu.Unlock()

	l.after(l.window, func() { l.release(actor) })

	cd, err := l.cooldowns.Get(ctx, actor)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("cooldown lookup: %w", err)
	}

	if remaining := l.cooldown - l.now().Sub(cd.LastActionAt); remaining > 0 {
		return &domain.RateLimitedError{RetryAfter: remaining}
	}
	return nil
}

// Touch stamps the actor's cooldown after a successful non-privileged
// attestation.
func (l *Limiter) Touch(ctx context.Context, actor domain.MemberID) error {
	if err := l.cooldowns.Touch(ctx, actor, l.now()); err != nil {
		return fmt.Errorf("cooldown touch: %w", err)
	}
	return nil
}

func (l *Limiter) release(actor domain.MemberID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := l.inflight[actor]; n <= 1 {
		delete(l.inflight, actor)
	} else {
		l.inflight[actor] = n - 1
	}
}
