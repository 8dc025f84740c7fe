package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/novadecore/personal-blog/internal/core/auth"
	"github.com/novadecore/personal-blog/internal/core/cache"
	"github.com/novadecore/personal-blog/internal/domain"
)

// PostView 带作者信息的展示单元，列表与详情共用
type PostView struct {
	domain.Post
	Author *domain.PostAuthor `json:"author"`
}

type CreatePostInput struct {
	Title     string
	Content   string
	Status    string // 为空默认 draft
	ImageMode *string
	ImageURLs []string
}

type AuthoringService interface {
	List(ctx context.Context) ([]PostView, error)
	Get(ctx context.Context, id int64) (*PostView, error)
	Create(ctx context.Context, ident *auth.Identity, in CreatePostInput) (*PostView, error)
	Update(ctx context.Context, ident *auth.Identity, id int64, upd domain.PostUpdate) (*PostView, error)
	Delete(ctx context.Context, ident *auth.Identity, id int64) error
}

type authoringService struct {
	posts domain.PostRepository
	cache *cache.Cache // 可为 nil（未配置 redis 时直连 DB）
	ttl   time.Duration
}

func NewAuthoringService(posts domain.PostRepository, c *cache.Cache, ttl time.Duration) AuthoringService {
	return &authoringService{posts: posts, cache: c, ttl: ttl}
}

const listCacheKey = "posts:all"

func postCacheKey(id int64) string { return "posts:" + strconv.FormatInt(id, 10) }

func (s *authoringService) cached() bool { return s.cache != nil && s.ttl > 0 }

func (s *authoringService) List(ctx context.Context) ([]PostView, error) {
	if !s.cached() {
		return s.loadList(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]PostView](s.cache, ctx, listCacheKey, s.ttl, func(ctx context.Context) (*[]PostView, error) {
		views, e := s.loadList(ctx)
		if e != nil {
			return nil, e
		}
		return &views, nil
	})
	if err != nil {
		// 缓存层故障不拦读路径
		return s.loadList(ctx)
	}
	if out == nil {
		return []PostView{}, nil
	}
	return *out, nil
}

func (s *authoringService) loadList(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	authors, err := s.posts.AuthorsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, withAuthor(p, authors))
	}
	return views, nil
}

func (s *authoringService) Get(ctx context.Context, id int64) (*PostView, error) {
	if !s.cached() {
		return s.loadOne(ctx, id)
	}
	v, err := cache.GetOrLoadJSON[PostView](s.cache, ctx, postCacheKey(id), s.ttl, func(ctx context.Context) (*PostView, error) {
		return s.loadOne(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return s.loadOne(ctx, id)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (s *authoringService) loadOne(ctx context.Context, id int64) (*PostView, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	authors, err := s.posts.AuthorsByIDs(ctx, []int64{p.UserID})
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	v := withAuthor(*p, authors)
	return &v, nil
}

func (s *authoringService) Create(ctx context.Context, ident *auth.Identity, in CreatePostInput) (*PostView, error) {
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}
	if in.Title == "" || in.Content == "" {
		return nil, fmt.Errorf("title and content are required: %w", domain.ErrInvalidArgument)
	}
	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, domain.ErrInvalidArgument)
	}
	if err := checkImageMode(in.ImageMode, len(in.ImageURLs)); err != nil {
		return nil, err
	}

	p := &domain.Post{
		UserID:    ident.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Status:    status,
		ImageMode: in.ImageMode,
	}
	if status == domain.StatusPublished {
		now := time.Now()
		p.PublishedAt = &now
	}
	if err := s.posts.Create(ctx, p, in.ImageURLs); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.invalidate(ctx, p.ID)
	return s.view(ctx, p)
}

// Update 部分更新：未提交的字段保持原值；image_urls 提交即整组替换，
// 提交空列表表示清空。状态首次进入 published 时落 published_at
func (s *authoringService) Update(ctx context.Context, ident *auth.Identity, id int64, upd domain.PostUpdate) (*PostView, error) {
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}
	if upd.Empty() {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrInvalidArgument)
	}

	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.UserID != ident.UserID {
		return nil, domain.ErrForbidden
	}

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("title must not be empty: %w", domain.ErrInvalidArgument)
		}
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		if *upd.Content == "" {
			return nil, fmt.Errorf("content must not be empty: %w", domain.ErrInvalidArgument)
		}
		p.Content = *upd.Content
	}
	if upd.Status != nil {
		if !domain.ValidStatus(*upd.Status) {
			return nil, fmt.Errorf("unknown status %q: %w", *upd.Status, domain.ErrInvalidArgument)
		}
		if *upd.Status == domain.StatusPublished && p.Status != domain.StatusPublished && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
		p.Status = *upd.Status
	}
	if upd.ImageMode != nil {
		p.ImageMode = upd.ImageMode
	}

	// 生效后的 mode 与生效后的图片数一起校验上限
	imageCount := len(p.Images)
	if upd.ImageURLs != nil {
		imageCount = len(*upd.ImageURLs)
	}
	if err := checkImageMode(p.ImageMode, imageCount); err != nil {
		return nil, err
	}

	var urls []string
	if upd.ImageURLs != nil {
		urls = *upd.ImageURLs
	}
	if err := s.posts.Update(ctx, p, upd.ImageURLs != nil, urls); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.invalidate(ctx, id)
	return s.view(ctx, p)
}

func (s *authoringService) Delete(ctx context.Context, ident *auth.Identity, id int64) error {
	if ident == nil {
		return domain.ErrUnauthenticated
	}
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.UserID != ident.UserID {
		return domain.ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *authoringService) view(ctx context.Context, p *domain.Post) (*PostView, error) {
	authors, err := s.posts.AuthorsByIDs(ctx, []int64{p.UserID})
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	v := withAuthor(*p, authors)
	return &v, nil
}

func (s *authoringService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, listCacheKey, postCacheKey(id))
}

func withAuthor(p domain.Post, authors map[int64]domain.PostAuthor) PostView {
	v := PostView{Post: p}
	if a, ok := authors[p.UserID]; ok {
		v.Author = &a
	}
	if v.Images == nil {
		v.Images = []domain.Image{}
	}
	return v
}

// checkImageMode 上限策略：超过声明 mode 的上限直接拒绝，不做截断
func checkImageMode(mode *string, imageCount int) error {
	if mode == nil {
		return nil
	}
	switch *mode {
	case domain.ImageModeNone, domain.ImageModeSingle, domain.ImageModeTriple:
	default:
		return fmt.Errorf("unknown image_mode %q: %w", *mode, domain.ErrInvalidArgument)
	}
	if limit := domain.ImageCap(*mode); limit >= 0 && imageCount > limit {
		return fmt.Errorf("image_mode %s allows at most %d images: %w", *mode, limit, domain.ErrInvalidArgument)
	}
	return nil
}
