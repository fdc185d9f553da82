// Package ratelimit guards tool usage by rate and total call count.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy configures the guard.
type Policy struct {
	// PerMinute limits calls per minute for each tool; 0 disables the rate.
	PerMinute int
	// Burst allows short bursts above the steady rate.
	Burst int
	// MaxTotal limits total calls per tool; 0 disables the ceiling.
	MaxTotal int
}

// Denial reasons.
const (
	ReasonRate     = "rate_limited"
	ReasonMaxTotal = "max_total_exceeded"
)

type toolState struct {
	count   int
	limiter *rate.Limiter
}

// Guard keeps per-tool counters and token buckets.
type Guard struct {
	mu     sync.Mutex
	policy Policy
	byTool map[string]*toolState
}

// New creates a guard for the given policy.
func New(policy Policy) *Guard {
	if policy.PerMinute > 0 && policy.Burst <= 0 {
		policy.Burst = policy.PerMinute
	}
	return &Guard{
		policy: policy,
		byTool: make(map[string]*toolState),
	}
}

// Allow reports whether the tool may run now. When denied, the second
// return value names the reason.
func (g *Guard) Allow(toolName string) (bool, string) {
	if g == nil {
		return true, ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.byTool[toolName]
	if state == nil {
		state = &toolState{}
		if g.policy.PerMinute > 0 {
			state.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(g.policy.PerMinute)), g.policy.Burst)
		}
		g.byTool[toolName] = state
	}

	if g.policy.MaxTotal > 0 && state.count >= g.policy.MaxTotal {
		return false, ReasonMaxTotal
	}
	if state.limiter != nil && !state.limiter.Allow() {
		return false, ReasonRate
	}

	state.count++
	return true, ""
}
