package identity

import (
	"context"
	"errors"
	"strings"

	"hotncold-server/pkg/errutil"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
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

// ResolveOrProvision returns the User for a verified external identity,
// creating the record on first sight. The operation is idempotent: a
// concurrent first-sight race loses the insert to the unique index on
// external_uid and resolves by re-reading.
func (s *Service) ResolveOrProvision(ctx context.Context, ext *ExternalIdentity) (*User, error) {
	user, err := s.findByExternalUID(ctx, ext.Subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	displayName := ext.Name
	if displayName == "" {
		displayName, _, _ = strings.Cut(ext.Email, "@")
	}

	user = &User{
		ID:          uuid.NewString(),
		ExternalUID: ext.Subject,
		Email:       ext.Email,
		DisplayName: displayName,
		AvatarURL:   ext.Picture,
		Role:        RoleUser,
		IsActive:    true,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the provisioning race; the row exists now.
			return s.mustFindByExternalUID(ctx, ext.Subject)
		}
		zap.L().Error("failed to provision user", zap.String("external_uid", ext.Subject), zap.Error(err))
		return nil, errutil.Unavailable("user store unavailable", errutil.WithErr(err))
	}

	zap.L().Info("provisioned user on first sight",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errutil.NotFound("user not found")
	}
	if err != nil {
		return nil, errutil.Unavailable("user store unavailable", errutil.WithErr(err))
	}
	return &user, nil
}

// UpdateProfile applies the caller-editable profile fields and returns the
// refreshed record.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update UserUpdate) (*User, error) {
	fields := map[string]any{}
	if update.DisplayName != nil {
		fields["display_name"] = *update.DisplayName
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}
	if update.FCMToken != nil {
		fields["fcm_token"] = *update.FCMToken
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Updates(fields).Error; err != nil {
			return nil, errutil.Unavailable("user store unavailable", errutil.WithErr(err))
		}
	}

	return s.GetUser(ctx, userID)
}

func (s *Service) findByExternalUID(ctx context.Context, uid string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("external_uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errutil.Unavailable("user store unavailable", errutil.WithErr(err))
	}
	return &user, nil
}

func (s *Service) mustFindByExternalUID(ctx context.Context, uid string) (*User, error) {
	user, err := s.findByExternalUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errutil.Internal("user vanished after duplicate-key insert")
	}
	return user, nil
}
