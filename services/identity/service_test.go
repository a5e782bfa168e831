package identity

import (
	"context"
	"errors"
	"testing"

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

	db := testutil.NewTestDB(t, &User{})
	return NewService(ServiceParams{DB: db}), db
}

func TestResolveOrProvisionFirstSight(t *testing.T) {
	svc, db := newTestService(t)

	user, err := svc.ResolveOrProvision(context.Background(), &ExternalIdentity{
		Subject: "firebase-uid-1",
		Email:   "ayse@example.com",
		Name:    "Ayşe Yılmaz",
		Picture: "https://example.com/ayse.png",
	})
	require.NoError(t, err)

	require.NotEmpty(t, user.ID)
	require.Equal(t, "firebase-uid-1", user.ExternalUID)
	require.Equal(t, "ayse@example.com", user.Email)
	require.Equal(t, "Ayşe Yılmaz", user.DisplayName)
	require.Equal(t, "https://example.com/ayse.png", user.AvatarURL)
	require.Equal(t, RoleUser, user.Role)
	require.True(t, user.IsActive)
	require.Zero(t, user.TotalPoints)

	var count int64
	require.NoError(t, db.Model(&User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestResolveOrProvisionIdempotent(t *testing.T) {
	svc, db := newTestService(t)

	ext := &ExternalIdentity{Subject: "firebase-uid-1", Email: "ayse@example.com", Name: "Ayşe"}

	first, err := svc.ResolveOrProvision(context.Background(), ext)
	require.NoError(t, err)

	second, err := svc.ResolveOrProvision(context.Background(), ext)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestResolveOrProvisionDisplayNameFallback(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.ResolveOrProvision(context.Background(), &ExternalIdentity{
		Subject: "firebase-uid-2",
		Email:   "mehmet.kaya@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "mehmet.kaya", user.DisplayName)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "missing")
	require.Error(t, err)

	var base errutil.BaseError
	require.True(t, errors.As(err, &base))
	require.Equal(t, errutil.StatusNotFound, base.Code)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.ResolveOrProvision(context.Background(), &ExternalIdentity{
		Subject: "firebase-uid-3",
		Email:   "ayse@example.com",
		Name:    "Ayşe",
	})
	require.NoError(t, err)

	name := "Ayşe Y."
	token := "fcm-token-abc"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UserUpdate{
		DisplayName: &name,
		FCMToken:    &token,
	})
	require.NoError(t, err)
	require.Equal(t, "Ayşe Y.", updated.DisplayName)
	require.Equal(t, "fcm-token-abc", updated.FCMToken)
	require.Equal(t, user.Email, updated.Email)
}

func TestUpdateProfileNoFields(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.ResolveOrProvision(context.Background(), &ExternalIdentity{
		Subject: "firebase-uid-4",
		Email:   "ayse@example.com",
		Name:    "Ayşe",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UserUpdate{})
	require.NoError(t, err)
	require.Equal(t, user.DisplayName, updated.DisplayName)
}
