package location

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotncold-server/pkg/errutil"
	"hotncold-server/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, &Sponsor{}, &Location{}, &RewardTemplate{})
	return NewService(ServiceParams{DB: db}), db
}

func seedLocation(t *testing.T, db *gorm.DB, name, city string, lat, lng float64, active bool) *Location {
	t.Helper()

	loc := &Location{
		ID:        uuid.NewString(),
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		RadiusM:   100,
		City:      city,
		IsActive:  active,
	}
	testutil.MustCreate(t, db, loc)
	return loc
}

func seedTemplate(t *testing.T, db *gorm.DB, loc *Location, active bool) *RewardTemplate {
	t.Helper()

	tmpl := &RewardTemplate{
		ID:          uuid.NewString(),
		LocationID:  loc.ID,
		RewardType:  RewardPoints,
		RewardValue: 10,
		IsActive:    active,
	}
	testutil.MustCreate(t, db, tmpl)
	return tmpl
}

func TestNearbyFiltersAndSorts(t *testing.T) {
	svc, db := newTestService(t)

	// Distances from Taksim (41.0370, 28.9850): Galata ~1.5 km,
	// Kadıköy ~6.5 km, Eskişehir ~190 km.
	taksim := seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	galata := seedLocation(t, db, "Galata Tower View", "Istanbul", 41.0256, 28.9741, true)
	kadikoy := seedLocation(t, db, "Kadıköy Market Walk", "Istanbul", 40.9903, 29.0291, true)
	seedLocation(t, db, "Eskişehir Clock Tower", "Eskisehir", 39.7667, 30.5250, true)

	results, err := svc.Nearby(context.Background(), NearbyQuery{
		Latitude:  41.0370,
		Longitude: 28.9850,
		RadiusKM:  10,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Ascending distance, center first.
	require.Equal(t, taksim.ID, results[0].ID)
	require.Equal(t, galata.ID, results[1].ID)
	require.Equal(t, kadikoy.ID, results[2].ID)
	require.Zero(t, results[0].DistanceM)
	require.Less(t, results[1].DistanceM, results[2].DistanceM)
}

func TestNearbyRadiusExcludes(t *testing.T) {
	svc, db := newTestService(t)

	seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	seedLocation(t, db, "Kadıköy Market Walk", "Istanbul", 40.9903, 29.0291, true)

	results, err := svc.Nearby(context.Background(), NearbyQuery{
		Latitude:  41.0370,
		Longitude: 28.9850,
		RadiusKM:  2,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Taksim Square Coffee", results[0].Name)
}

func TestNearbyCityFilter(t *testing.T) {
	svc, db := newTestService(t)

	seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	seedLocation(t, db, "Galata Tower View", "Istanbul", 41.0256, 28.9741, true)
	seedLocation(t, db, "Eskişehir Clock Tower", "Eskisehir", 39.7667, 30.5250, true)

	results, err := svc.Nearby(context.Background(), NearbyQuery{
		Latitude:  41.0370,
		Longitude: 28.9850,
		RadiusKM:  1000,
		City:      "Eskisehir",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Eskişehir Clock Tower", results[0].Name)
}

func TestNearbySkipsInactive(t *testing.T) {
	svc, db := newTestService(t)

	seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	seedLocation(t, db, "Closed Venue", "Istanbul", 41.0371, 28.9851, false)

	results, err := svc.Nearby(context.Background(), NearbyQuery{
		Latitude:  41.0370,
		Longitude: 28.9850,
		RadiusKM:  5,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Taksim Square Coffee", results[0].Name)
}

func TestNearbyPreloadsActiveTemplate(t *testing.T) {
	svc, db := newTestService(t)

	withTemplate := seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	tmpl := seedTemplate(t, db, withTemplate, true)

	inactiveTemplate := seedLocation(t, db, "Galata Tower View", "Istanbul", 41.0256, 28.9741, true)
	seedTemplate(t, db, inactiveTemplate, false)

	results, err := svc.Nearby(context.Background(), NearbyQuery{
		Latitude:  41.0370,
		Longitude: 28.9850,
		RadiusKM:  10,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	byID := map[string]*NearbyLocation{}
	for _, r := range results {
		byID[r.Location.ID] = r
	}

	require.NotNil(t, byID[withTemplate.ID].RewardTemplate)
	require.Equal(t, tmpl.ID, byID[withTemplate.ID].RewardTemplate.ID)
	require.Nil(t, byID[inactiveTemplate.ID].RewardTemplate)
}

func TestNearbyEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Nearby(context.Background(), NearbyQuery{
		Latitude:  41.0370,
		Longitude: 28.9850,
		RadiusKM:  5,
	})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestFindClaimable(t *testing.T) {
	svc, db := newTestService(t)

	loc := seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	tmpl := seedTemplate(t, db, loc, true)

	gotLoc, gotTmpl, err := svc.FindClaimable(context.Background(), loc.ID)
	require.NoError(t, err)
	require.Equal(t, loc.ID, gotLoc.ID)
	require.Equal(t, tmpl.ID, gotTmpl.ID)
}

func TestFindClaimableMissingLocation(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.FindClaimable(context.Background(), uuid.NewString())
	requireNotFound(t, err, "Location not found or inactive")
}

func TestFindClaimableInactiveLocation(t *testing.T) {
	svc, db := newTestService(t)

	loc := seedLocation(t, db, "Closed Venue", "Istanbul", 41.0370, 28.9850, false)
	seedTemplate(t, db, loc, true)

	_, _, err := svc.FindClaimable(context.Background(), loc.ID)
	requireNotFound(t, err, "Location not found or inactive")
}

func TestFindClaimableNoActiveTemplate(t *testing.T) {
	svc, db := newTestService(t)

	loc := seedLocation(t, db, "Taksim Square Coffee", "Istanbul", 41.0370, 28.9850, true)
	seedTemplate(t, db, loc, false)

	_, _, err := svc.FindClaimable(context.Background(), loc.ID)
	requireNotFound(t, err, "No active reward available at this location")
}

func TestInactiveFlagPersistsOnCreate(t *testing.T) {
	_, db := newTestService(t)

	loc := seedLocation(t, db, "Closed Venue", "Istanbul", 41.0370, 28.9850, false)
	tmpl := seedTemplate(t, db, loc, false)

	var storedLoc Location
	require.NoError(t, db.First(&storedLoc, "id = ?", loc.ID).Error)
	require.False(t, storedLoc.IsActive)

	var storedTmpl RewardTemplate
	require.NoError(t, db.First(&storedTmpl, "id = ?", tmpl.ID).Error)
	require.False(t, storedTmpl.IsActive)
}

func requireNotFound(t *testing.T, err error, message string) {
	t.Helper()

	require.Error(t, err)
	var base errutil.BaseError
	require.True(t, errors.As(err, &base))
	require.Equal(t, errutil.StatusNotFound, base.Code)
	require.Equal(t, message, base.Message)
}
