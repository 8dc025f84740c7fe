package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/domain"
	"github.com/novadecore/personal-blog/internal/repo"
	"github.com/novadecore/personal-blog/pkg/utils"
)

type AccountService interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, ident *auth.Identity) (*domain.User, error)
}

type accountService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAccountService(users domain.UserRepository, jwter *auth.JWTer) AccountService {
	return &accountService{users: users, jwter: jwter}
}

func (s *accountService) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email/password required: %w", domain.ErrInvalidArgument)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: utils.HashPassword(password),
	}
	if displayName != "" {
		err = s.users.CreateWithProfile(ctx, u, displayName)
	} else {
		err = s.users.Create(ctx, u)
	}
	if err != nil {
		// 并发注册同邮箱时唯一索引兜底
		if repo.IsDupKey(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login 未知邮箱与密码错误返回同一个错误，防止枚举用户
func (s *accountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("email/password required: %w", domain.ErrInvalidArgument)
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("find by email: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.jwter.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// CurrentUser 回查活跃用户记录；token 有效但用户已删则 NotFound
func (s *accountService) CurrentUser(ctx context.Context, ident *auth.Identity) (*domain.User, error) {
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err := s.users.FindByID(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
