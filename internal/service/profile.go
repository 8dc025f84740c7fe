package service

import (
	"context"
	"fmt"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/domain"
)

type ProfileInput struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Role        *string `json:"role"`
	AvatarURL   *string `json:"avatar_url"`
}

type ProfileService interface {
	Get(ctx context.Context, userID int64) (*domain.Profile, error)
	Upsert(ctx context.Context, ident *auth.Identity, in ProfileInput) (*domain.Profile, error)
}

type profileService struct {
	profiles domain.ProfileRepository
}

func NewProfileService(profiles domain.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

// Get 从未写过 profile 返回 (nil, nil)，不是错误
func (s *profileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// Upsert 整行覆盖：请求里缺的字段写成 NULL，
// 与 post 的“缺省保持原值”刻意不同
func (s *profileService) Upsert(ctx context.Context, ident *auth.Identity, in ProfileInput) (*domain.Profile, error) {
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}
	p := &domain.Profile{
		UserID:      ident.UserID,
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		Role:        in.Role,
		AvatarURL:   in.AvatarURL,
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}
