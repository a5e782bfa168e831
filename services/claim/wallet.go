package claim

import (
	"context"

	"hotncold-server/pkg/db/pagination"
	"hotncold-server/pkg/errutil"
	"hotncold-server/services/identity"
)

// Wallet returns the user's granted rewards newest-first, cursor-paginated.
func (s *Service) Wallet(ctx context.Context, user *identity.User, page pagination.Pagination) (*WalletSummary, error) {
	stmt := s.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Limit(page.Limit + 1)

	if page.Cursor != "" {
		cursor, err := pagination.DecodeCursor(page.Cursor)
		if err != nil {
			return nil, errutil.BadRequest("invalid cursor")
		}
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rewards []*Reward
	if err := stmt.Find(&rewards).Error; err != nil {
		return nil, errutil.Unavailable("reward store unavailable", errutil.WithErr(err))
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&Reward{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		return nil, errutil.Unavailable("reward store unavailable", errutil.WithErr(err))
	}

	rewards, pageInfo := pagination.TrimPage(rewards, page.Limit, func(r *Reward) pagination.Cursor {
		return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
	})

	return &WalletSummary{
		TotalPoints:  user.TotalPoints,
		TotalRewards: total,
		Rewards:      rewards,
		PageInfo:     pageInfo,
	}, nil
}

// Stats returns claim statistics for the user's profile screen.
func (s *Service) Stats(ctx context.Context, user *identity.User) (*identity.UserStats, error) {
	var totalClaims int64
	err := s.db.WithContext(ctx).
		Model(&ClaimLog{}).
		Where("user_id = ?", user.ID).
		Count(&totalClaims).Error
	if err != nil {
		return nil, errutil.Unavailable("claim store unavailable", errutil.WithErr(err))
	}

	return &identity.UserStats{
		TotalPoints: user.TotalPoints,
		TotalClaims: totalClaims,
		MemberSince: user.CreatedAt,
	}, nil
}
