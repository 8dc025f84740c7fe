package router_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/domain"
	"github.com/novadecore/personal-blog/internal/service"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAccountService) CurrentUser(ctx context.Context, ident *auth.Identity) (*domain.User, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockAuthoringService struct {
	mock.Mock
}

func (m *MockAuthoringService) List(ctx context.Context) ([]service.PostView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PostView), args.Error(1)
}

func (m *MockAuthoringService) Get(ctx context.Context, id int64) (*service.PostView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockAuthoringService) Create(ctx context.Context, ident *auth.Identity, in service.CreatePostInput) (*service.PostView, error) {
	args := m.Called(ctx, ident, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockAuthoringService) Update(ctx context.Context, ident *auth.Identity, id int64, upd domain.PostUpdate) (*service.PostView, error) {
	args := m.Called(ctx, ident, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostView), args.Error(1)
}

func (m *MockAuthoringService) Delete(ctx context.Context, ident *auth.Identity, id int64) error {
	args := m.Called(ctx, ident, id)
	return args.Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) Upsert(ctx context.Context, ident *auth.Identity, in service.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, ident, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
