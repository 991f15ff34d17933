package ratelimiter

import (
	"sync"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time frame.
// Counters reset when the frame rolls over.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

type window struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		cfg:     cfg,
		logger:  logger,
	}
}

// Allow reports whether the client may proceed and, if not, how long until the
// current window resets.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	if !rl.cfg.Enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, ok := rl.clients[clientID]
	if !ok || now.After(w.resetAt) {
		rl.clients[clientID] = &window{count: 1, resetAt: now.Add(rl.cfg.TimeFrame)}
		return true, 0
	}

	if w.count >= rl.cfg.RequestsPerTimeFrame {
		rl.logger.Debugf("Rate limit exceeded for client: %s", clientID)
		return false, time.Until(w.resetAt)
	}

	w.count++
	return true, 0
}
