package claim

import (
	"context"
	"errors"
	"fmt"

	"hotncold-server/pkg/errutil"
	"hotncold-server/pkg/geo"
	"hotncold-server/services/identity"
	"hotncold-server/services/location"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	locations *location.Service
	limiter   RateLimiter
	tracer    trace.Tracer
}

type ServiceParams struct {
	fx.In
	DB             *gorm.DB
	Locations      *location.Service
	Limiter        RateLimiter
	TracerProvider trace.TracerProvider `optional:"true"`
}

func NewService(p ServiceParams) *Service {
	tp := p.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	return &Service{
		db:        p.DB,
		locations: p.Locations,
		limiter:   p.Limiter,
		tracer:    tp.Tracer("claim"),
	}
}

// Claim runs the full validation chain for a reward claim:
//  1. Location exists and is active
//  2. Location has an active reward template
//  3. No prior claim by this user at this location (once-only rule)
//  4. Claimed coordinates within the location's radius
//  5. No active cooldown, hourly and daily windows not exhausted
//
// Each stage short-circuits with no state mutated. Existence checks run
// before rate-limit checks so a caller never learns limit state for a
// nonexistent location, and the once-only check runs before the geofence so
// a repeat claim is rejected the same way regardless of where it comes from.
// On success the claim log, the reward, and the point-balance update commit
// as one transaction, then the rate counters advance best-effort.
func (s *Service) Claim(ctx context.Context, user *identity.User, locationID string, req ClaimRequest) (*ClaimResult, error) {
	ctx, span := s.tracer.Start(ctx, "claim.process")
	defer span.End()

	fields := []zap.Field{
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("user_id", user.ID),
		zap.String("location_id", locationID),
	}

	loc, tmpl, err := s.locations.FindClaimable(ctx, locationID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.alreadyClaimed(ctx, user.ID, loc.ID)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, errutil.Conflict("You have already claimed the reward at this location")
	}

	distance := geo.Distance(req.Latitude, req.Longitude, loc.Latitude, loc.Longitude)
	if distance > float64(loc.RadiusM) {
		return nil, errutil.BadRequest(fmt.Sprintf(
			"You are too far from the location (%.0fm away, max %dm)",
			distance, loc.RadiusM,
		))
	}

	if err := s.limiter.Admit(ctx, user.ID); err != nil {
		return nil, err
	}

	totalPoints, err := s.grant(ctx, user, loc, tmpl, req)
	if err != nil {
		zap.L().With(fields...).Error("claim grant failed", zap.Error(err))
		return nil, err
	}

	// The cache is a separate system with best-effort semantics; a lost
	// counter update never rolls back the committed claim.
	s.limiter.Record(ctx, user.ID)

	zap.L().With(fields...).Info("claim granted",
		zap.String("reward_type", string(tmpl.RewardType)),
		zap.Int64("reward_value", tmpl.RewardValue),
		zap.Float64("distance_m", distance),
	)

	return &ClaimResult{
		RewardType:        tmpl.RewardType,
		RewardValue:       tmpl.RewardValue,
		RewardDescription: rewardDescription(tmpl),
		TotalPoints:       totalPoints,
		LocationID:        loc.ID,
		LocationName:      loc.Name,
	}, nil
}

// grant commits the claim log, the reward, and the point-balance update as a
// single unit. A failed commit leaves zero trace of the attempt.
func (s *Service) grant(ctx context.Context, user *identity.User, loc *location.Location, tmpl *location.RewardTemplate, req ClaimRequest) (int64, error) {
	var totalPoints int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		log := &ClaimLog{
			ID:                uuid.NewString(),
			UserID:            user.ID,
			LocationID:        loc.ID,
			Latitude:          req.Latitude,
			Longitude:         req.Longitude,
			DeviceFingerprint: req.DeviceID,
		}
		if err := tx.Create(log).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the once-only race to a concurrent identical
				// claim; the store's unique index makes exactly one
				// attempt win.
				return errutil.Conflict("You have already claimed the reward at this location")
			}
			return err
		}

		reward := &Reward{
			ID:               uuid.NewString(),
			UserID:           user.ID,
			Type:             tmpl.RewardType,
			Value:            tmpl.RewardValue,
			Description:      rewardDescription(tmpl),
			RewardTemplateID: tmpl.ID,
			LocationID:       loc.ID,
		}
		if err := tx.Create(reward).Error; err != nil {
			return err
		}

		if tmpl.RewardType == location.RewardPoints {
			// In-place arithmetic so concurrent claims by the same user
			// at different locations both land.
			res := tx.Model(&identity.User{}).
				Where("id = ?", user.ID).
				Update("total_points", gorm.Expr("total_points + ?", tmpl.RewardValue))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		var current identity.User
		if err := tx.Select("total_points").Where("id = ?", user.ID).First(&current).Error; err != nil {
			return err
		}
		totalPoints = current.TotalPoints

		return nil
	})
	if err != nil {
		var base errutil.BaseError
		if errors.As(err, &base) {
			return 0, err
		}
		return 0, errutil.Unavailable("claim could not be committed", errutil.WithErr(err))
	}

	return totalPoints, nil
}

func (s *Service) alreadyClaimed(ctx context.Context, userID, locationID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&ClaimLog{}).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Count(&count).Error
	if err != nil {
		return false, errutil.Unavailable("claim store unavailable", errutil.WithErr(err))
	}
	return count > 0, nil
}

func rewardDescription(tmpl *location.RewardTemplate) string {
	if tmpl.RewardDescription != "" {
		return tmpl.RewardDescription
	}
	return fmt.Sprintf("+%d points", tmpl.RewardValue)
}
