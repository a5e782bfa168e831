package location

import (
	"context"
	"errors"
	"math"
	"sort"

	"hotncold-server/pkg/errutil"
	"hotncold-server/pkg/geo"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

type ServiceParams struct {
	fx.In
	DB *gorm.DB
}

func NewService(p ServiceParams) *Service {
	return &Service{db: p.DB}
}

// Nearby returns active locations within radiusKM of the center, template
// preloaded, sorted by ascending distance. The linear haversine filter is the
// same calculator the claim pipeline uses, so the map and the geofence agree.
func (s *Service) Nearby(ctx context.Context, q NearbyQuery) ([]*NearbyLocation, error) {
	stmt := s.db.WithContext(ctx).
		Preload("RewardTemplate", "is_active = ?", true).
		Where("is_active = ?", true)

	if q.City != "" {
		stmt = stmt.Where("city = ?", q.City)
	}

	var locations []*Location
	if err := stmt.Find(&locations).Error; err != nil {
		return nil, errutil.Unavailable("location store unavailable", errutil.WithErr(err))
	}

	radiusM := q.RadiusKM * 1000
	nearby := make([]*NearbyLocation, 0, len(locations))

	for _, loc := range locations {
		dist := geo.Distance(q.Latitude, q.Longitude, loc.Latitude, loc.Longitude)
		if dist <= radiusM {
			nearby = append(nearby, &NearbyLocation{
				Location:  *loc,
				DistanceM: math.Round(dist*10) / 10,
			})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceM < nearby[j].DistanceM
	})

	return nearby, nil
}

// FindClaimable loads an active location together with its active reward
// template for the claim pipeline. The two lookups are distinct failure
// stages: a missing or inactive location and a location with no active
// template report different messages.
func (s *Service) FindClaimable(ctx context.Context, locationID string) (*Location, *RewardTemplate, error) {
	var loc Location
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", locationID, true).
		First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errutil.NotFound("Location not found or inactive")
	}
	if err != nil {
		return nil, nil, errutil.Unavailable("location store unavailable", errutil.WithErr(err))
	}

	var tmpl RewardTemplate
	err = s.db.WithContext(ctx).
		Where("location_id = ? AND is_active = ?", loc.ID, true).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errutil.NotFound("No active reward available at this location")
	}
	if err != nil {
		return nil, nil, errutil.Unavailable("location store unavailable", errutil.WithErr(err))
	}

	return &loc, &tmpl, nil
}
