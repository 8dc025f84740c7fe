package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/domain"
	"github.com/novadecore/personal-blog/internal/service"
)

func strp(s string) *string { return &s }

func ident(id int64) *auth.Identity {
	return &auth.Identity{UserID: id, Email: "owner@x.com"}
}

func authorsFor(ids ...int64) map[int64]domain.PostAuthor {
	out := make(map[int64]domain.PostAuthor, len(ids))
	for _, id := range ids {
		out[id] = domain.PostAuthor{ID: id, Email: "owner@x.com"}
	}
	return out
}

func TestAuthoringCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("images keep submission order", func(t *testing.T) {
		posts := new(MockPostRepository)
		urls := []string{"u/a.png", "u/b.png", "u/c.png"}
		posts.On("Create", mock.Anything, mock.Anything, urls).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*domain.Post)
				p.ID = 10
				for i, u := range urls {
					p.Images = append(p.Images, domain.Image{PostID: 10, ImageURL: u, Position: i})
				}
			}).Return(nil)
		posts.On("AuthorsByIDs", mock.Anything, []int64{1}).Return(authorsFor(1), nil)

		svc := service.NewAuthoringService(posts, nil, 0)
		v, err := svc.Create(ctx, ident(1), service.CreatePostInput{
			Title: "t", Content: "c", Status: "published",
			ImageMode: strp(domain.ImageModeTriple), ImageURLs: urls,
		})
		require.NoError(t, err)
		require.Len(t, v.Images, 3)
		for i, img := range v.Images {
			assert.Equal(t, i, img.Position)
			assert.Equal(t, urls[i], img.ImageURL)
		}
		require.NotNil(t, v.Author)
		assert.Equal(t, int64(1), v.Author.ID)
	})

	t.Run("published gets timestamp, draft does not", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		posts.On("AuthorsByIDs", mock.Anything, mock.Anything).Return(authorsFor(1), nil)

		svc := service.NewAuthoringService(posts, nil, 0)
		pub, err := svc.Create(ctx, ident(1), service.CreatePostInput{Title: "t", Content: "c", Status: "published"})
		require.NoError(t, err)
		require.NotNil(t, pub.PublishedAt)
		assert.WithinDuration(t, time.Now(), *pub.PublishedAt, 5*time.Second)

		draft, err := svc.Create(ctx, ident(1), service.CreatePostInput{Title: "t", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, draft.Status)
		assert.Nil(t, draft.PublishedAt)
	})

	t.Run("validation", func(t *testing.T) {
		posts := new(MockPostRepository)
		svc := service.NewAuthoringService(posts, nil, 0)

		_, err := svc.Create(ctx, nil, service.CreatePostInput{Title: "t", Content: "c"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)

		_, err = svc.Create(ctx, ident(1), service.CreatePostInput{Title: "", Content: "c"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		_, err = svc.Create(ctx, ident(1), service.CreatePostInput{Title: "t", Content: "c", Status: "pending"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		// single 模式最多 1 张，超限拒绝而不是截断
		_, err = svc.Create(ctx, ident(1), service.CreatePostInput{
			Title: "t", Content: "c",
			ImageMode: strp(domain.ImageModeSingle),
			ImageURLs: []string{"u/a.png", "u/b.png"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		_, err = svc.Create(ctx, ident(1), service.CreatePostInput{
			Title: "t", Content: "c", ImageMode: strp("mosaic"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthoringUpdate(t *testing.T) {
	ctx := context.Background()

	existing := func() *domain.Post {
		return &domain.Post{
			ID: 10, UserID: 1, Title: "old", Content: "body", Status: domain.StatusDraft,
			Images: []domain.Image{{PostID: 10, ImageURL: "u/a.png", Position: 0}},
		}
	}

	t.Run("empty update rejected before any lookup", func(t *testing.T) {
		posts := new(MockPostRepository)
		svc := service.NewAuthoringService(posts, nil, 0)
		_, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		posts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("non-owner forbidden, nothing written", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		svc := service.NewAuthoringService(posts, nil, 0)
		_, err := svc.Update(ctx, ident(2), 10, domain.PostUpdate{Title: strp("new")})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing post", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)
		svc := service.NewAuthoringService(posts, nil, 0)
		_, err := svc.Update(ctx, ident(1), 99, domain.PostUpdate{Title: strp("new")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		posts.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
			return p.Title == "new" && p.Content == "body" && p.Status == domain.StatusDraft
		}), false, []string(nil)).Return(nil)
		posts.On("AuthorsByIDs", mock.Anything, mock.Anything).Return(authorsFor(1), nil)

		svc := service.NewAuthoringService(posts, nil, 0)
		v, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{Title: strp("new")})
		require.NoError(t, err)
		assert.Equal(t, "new", v.Title)
		assert.Equal(t, "body", v.Content)
		posts.AssertExpectations(t)
	})

	t.Run("image_urls present means full replacement, empty list clears", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		posts.On("Update", mock.Anything, mock.Anything, true, []string{}).Return(nil)
		posts.On("AuthorsByIDs", mock.Anything, mock.Anything).Return(authorsFor(1), nil)

		svc := service.NewAuthoringService(posts, nil, 0)
		empty := []string{}
		_, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{ImageURLs: &empty})
		require.NoError(t, err)
		posts.AssertExpectations(t)
	})

	t.Run("cap checked against effective mode and count", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		svc := service.NewAuthoringService(posts, nil, 0)

		// 只改 mode 为 none，但现存 1 张图 → 拒绝
		_, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{ImageMode: strp(domain.ImageModeNone)})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		// 同一请求同时清空图片则通过
		posts.On("Update", mock.Anything, mock.Anything, true, []string{}).Return(nil)
		posts.On("AuthorsByIDs", mock.Anything, mock.Anything).Return(authorsFor(1), nil)
		empty := []string{}
		_, err = svc.Update(ctx, ident(1), 10, domain.PostUpdate{
			ImageMode: strp(domain.ImageModeNone), ImageURLs: &empty,
		})
		assert.NoError(t, err)
	})

	t.Run("published_at set on first publish only", func(t *testing.T) {
		posts := new(MockPostRepository)
		first := existing()
		posts.On("FindByID", mock.Anything, int64(10)).Return(first, nil).Once()
		posts.On("Update", mock.Anything, mock.Anything, false, mock.Anything).Return(nil)
		posts.On("AuthorsByIDs", mock.Anything, mock.Anything).Return(authorsFor(1), nil)

		svc := service.NewAuthoringService(posts, nil, 0)
		v, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{Status: strp(domain.StatusPublished)})
		require.NoError(t, err)
		require.NotNil(t, v.PublishedAt)
		firstPublished := *v.PublishedAt

		// archived 后再发布不刷新时间戳
		archived := existing()
		archived.Status = domain.StatusArchived
		archived.PublishedAt = &firstPublished
		posts.On("FindByID", mock.Anything, int64(10)).Return(archived, nil).Once()

		v2, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{Status: strp(domain.StatusPublished)})
		require.NoError(t, err)
		require.NotNil(t, v2.PublishedAt)
		assert.Equal(t, firstPublished, *v2.PublishedAt)
	})

	t.Run("concurrent delete surfaces not found", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		posts.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(gorm.ErrRecordNotFound)
		svc := service.NewAuthoringService(posts, nil, 0)
		_, err := svc.Update(ctx, ident(1), 10, domain.PostUpdate{Title: strp("new")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAuthoringDelete(t *testing.T) {
	ctx := context.Background()
	owned := &domain.Post{ID: 10, UserID: 1, Title: "t", Content: "c"}

	t.Run("owner deletes", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(owned, nil)
		posts.On("Delete", mock.Anything, int64(10)).Return(nil)
		svc := service.NewAuthoringService(posts, nil, 0)
		require.NoError(t, svc.Delete(ctx, ident(1), 10))
		posts.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(10)).Return(owned, nil)
		svc := service.NewAuthoringService(posts, nil, 0)
		assert.ErrorIs(t, svc.Delete(ctx, ident(2), 10), domain.ErrForbidden)
		posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing post", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)
		svc := service.NewAuthoringService(posts, nil, 0)
		assert.ErrorIs(t, svc.Delete(ctx, ident(1), 99), domain.ErrNotFound)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		svc := service.NewAuthoringService(new(MockPostRepository), nil, 0)
		assert.ErrorIs(t, svc.Delete(ctx, nil, 10), domain.ErrUnauthenticated)
	})
}

func TestAuthoringListGet(t *testing.T) {
	ctx := context.Background()

	t.Run("list carries authors and ordered images", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("ListAll", mock.Anything).Return([]domain.Post{
			{ID: 2, UserID: 1, Title: "b", Images: []domain.Image{
				{PostID: 2, ImageURL: "u/a.png", Position: 0},
				{PostID: 2, ImageURL: "u/b.png", Position: 1},
			}},
			{ID: 1, UserID: 3, Title: "a"},
		}, nil)
		dn := "Ada"
		posts.On("AuthorsByIDs", mock.Anything, []int64{1, 3}).Return(map[int64]domain.PostAuthor{
			1: {ID: 1, Email: "a@x.com", DisplayName: &dn},
			3: {ID: 3, Email: "b@x.com"},
		}, nil)

		svc := service.NewAuthoringService(posts, nil, 0)
		views, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		require.NotNil(t, views[0].Author)
		assert.Equal(t, "Ada", *views[0].Author.DisplayName)
		assert.Nil(t, views[1].Author.DisplayName)
		// 没有图片的 post 序列化为空数组而不是 null
		assert.NotNil(t, views[1].Images)
		assert.Len(t, views[1].Images, 0)
	})

	t.Run("get missing", func(t *testing.T) {
		posts := new(MockPostRepository)
		posts.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)
		svc := service.NewAuthoringService(posts, nil, 0)
		_, err := svc.Get(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
