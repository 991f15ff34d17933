package ratelimiter

import (
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/config"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"go.uber.org/zap"
)

func NewRateLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	return NewFixedWindowLimiter(cfg, logger)
}
