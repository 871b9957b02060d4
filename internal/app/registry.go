package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen11/console-settings/internal/ports"
)

// DefaultSessionTTL is used when NewRegistry is given a non-positive TTL.
const DefaultSessionTTL = 30 * time.Minute

// DefaultMaxSessions bounds live consoles when no limit is configured.
const DefaultMaxSessions = 10_000

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxSessions caps the number of live consoles. Once the cap is reached,
// creating a console for a new session evicts the least recently used one.
// Non-positive values keep the default.
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

// Registry keeps one Console per session and evicts consoles that have not
// been used for longer than the TTL. The number of live consoles is capped,
// so clients that never return their session cookie cannot grow it without
// bound. Panels never share state across sessions. Registry is safe for
// concurrent use.
type Registry struct {
	client      ports.SettingsClient
	opts        Options
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	console  *Console
	lastSeen time.Time
}

// NewRegistry creates an empty registry whose consoles use client and opts.
func NewRegistry(client ports.SettingsClient, opts Options, ttl time.Duration, ropts ...RegistryOption) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	r := &Registry{
		client:      client,
		opts:        opts,
		ttl:         ttl,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	for _, o := range ropts {
		o(r)
	}
	return r
}

// Console returns the console for id, creating it on first use, and marks
// the session as active.
func (r *Registry) Console(id string) *Console {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return s.console
	}

	if len(r.sessions) >= r.maxSessions {
		r.evictOldestLocked()
	}
	c := NewConsole(r.client, r.opts)
	r.sessions[id] = &session{console: c, lastSeen: now}
	return c
}

// evictOldestLocked drops the least recently used session. Must be called
// with r.mu held.
func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range r.sessions {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID, oldest = id, s.lastSeen
		}
	}
	delete(r.sessions, oldestID)
	r.opts.logger().Debug("evicted least recently used console session",
		slog.Int("max_sessions", r.maxSessions),
	)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed. Calls still in flight for an evicted console finish in the
// background and are discarded with it.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run sweeps the registry every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := r.opts.logger()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.DebugContext(ctx, "evicted idle console sessions",
					slog.Int("evicted", n),
					slog.Int("remaining", r.Len()),
				)
			}
		}
	}
}
