package claim

import (
	"context"
	"errors"
	"time"

	"hotncold-server/pkg/config"
	"hotncold-server/pkg/errutil"
	"hotncold-server/pkg/rediskey"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RateLimiter is the pipeline's admission-control boundary over the
// rate-limit cache.
type RateLimiter interface {
	// Admit checks cooldown, hourly, and daily windows in that order and
	// returns TooManyRequest on the first exhausted one. Cache I/O failure
	// comes back as Unavailable; nothing is mutated either way.
	Admit(ctx context.Context, userID string) error
	// Record advances all three windows after a committed claim. Best
	// effort: failures are logged, never surfaced, and never undo the
	// committed claim.
	Record(ctx context.Context, userID string)
}

type redisLimiter struct {
	rdb             *redis.Client
	maxScansPerHour int64
	maxDailyScans   int64
	cooldown        time.Duration
}

type RateLimiterParams struct {
	fx.In
	Redis  *redis.Client
	Config *config.Config
}

func NewRateLimiter(p RateLimiterParams) RateLimiter {
	return &redisLimiter{
		rdb:             p.Redis,
		maxScansPerHour: p.Config.Claim.MaxScansPerHour,
		maxDailyScans:   p.Config.Claim.MaxDailyScans,
		cooldown:        p.Config.Claim.ScanCooldown,
	}
}

func (l *redisLimiter) Admit(ctx context.Context, userID string) error {
	exists, err := l.rdb.Exists(ctx, rediskey.BuildClaimCooldownKey(userID)).Result()
	if err != nil {
		return errutil.Unavailable("rate-limit cache unavailable", errutil.WithErr(err))
	}
	if exists > 0 {
		return errutil.TooManyRequest("Please wait before claiming another reward")
	}

	hourly, err := l.getCount(ctx, rediskey.BuildClaimHourlyKey(userID))
	if err != nil {
		return err
	}
	if hourly >= l.maxScansPerHour {
		return errutil.TooManyRequest("Hourly claim limit reached")
	}

	daily, err := l.getCount(ctx, rediskey.BuildClaimDailyKey(userID, utcDate()))
	if err != nil {
		return err
	}
	if daily >= l.maxDailyScans {
		return errutil.TooManyRequest("Daily claim limit reached")
	}

	return nil
}

func (l *redisLimiter) Record(ctx context.Context, userID string) {
	hourlyKey := rediskey.BuildClaimHourlyKey(userID)
	dailyKey := rediskey.BuildClaimDailyKey(userID, utcDate())
	cooldownKey := rediskey.BuildClaimCooldownKey(userID)

	pipe := l.rdb.TxPipeline()
	pipe.Incr(ctx, hourlyKey)
	// NX keeps the window anchored at the first claim instead of sliding
	// with every claim.
	pipe.ExpireNX(ctx, hourlyKey, time.Hour)
	pipe.Incr(ctx, dailyKey)
	pipe.ExpireNX(ctx, dailyKey, 24*time.Hour)
	pipe.SetEx(ctx, cooldownKey, "1", l.cooldown)

	if _, err := pipe.Exec(ctx); err != nil {
		// The claim is already committed; the user simply gets another
		// chance before the next window.
		zap.L().Warn("failed to record claim rate counters",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func (l *redisLimiter) getCount(ctx context.Context, key string) (int64, error) {
	count, err := l.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errutil.Unavailable("rate-limit cache unavailable", errutil.WithErr(err))
	}
	return count, nil
}

func utcDate() string {
	return time.Now().UTC().Format("2006-01-02")
}
