package domain

import (
	"context"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

const (
	ImageModeNone   = "none"
	ImageModeSingle = "single"
	ImageModeTriple = "triple"
)

func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// ImageCap 返回 image_mode 允许的图片上限，-1 表示不限
func ImageCap(mode string) int {
	switch mode {
	case ImageModeNone:
		return 0
	case ImageModeSingle:
		return 1
	case ImageModeTriple:
		return 3
	}
	return -1
}

type Post struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64      `gorm:"index;not null" json:"userId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Status      string     `gorm:"size:16;not null;default:draft" json:"status"`
	ImageMode   *string    `gorm:"size:16" json:"imageMode"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Images []Image `gorm:"-" json:"images"`
}

func (Post) TableName() string { return "posts" }

// Image 只依附于一个 Post，position 从 0 起连续无洞
type Image struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID   int64  `gorm:"index:idx_post_position,unique;not null" json:"postId"`
	ImageURL string `gorm:"size:1024;not null" json:"imageUrl"`
	Position int    `gorm:"index:idx_post_position,unique;not null" json:"position"`
}

func (Image) TableName() string { return "post_images" }

// PostAuthor 列表/详情展示用的作者信息，display_name 无 profile 时为 nil
type PostAuthor struct {
	ID          int64
	Email       string
	DisplayName *string
}

// PostUpdate 部分更新：nil 表示该字段未提交、保持原值。
// ImageURLs 提交空切片也算提交 —— 整组替换为空。
type PostUpdate struct {
	Title     *string
	Content   *string
	Status    *string
	ImageMode *string
	ImageURLs *[]string
}

func (u PostUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Status == nil &&
		u.ImageMode == nil && u.ImageURLs == nil
}

type PostRepository interface {
	// Create 同事务写入 post 与其 images（position 按切片下标）
	Create(ctx context.Context, p *Post, imageURLs []string) error
	FindByID(ctx context.Context, id int64) (*Post, error)
	// ListAll 按创建时间倒序，含各自的有序图片
	ListAll(ctx context.Context) ([]Post, error)
	// Update 字段更新与图片整组替换在同一事务内提交
	Update(ctx context.Context, p *Post, replaceImages bool, imageURLs []string) error
	// Delete 先删子图片再删 post，单事务
	Delete(ctx context.Context, id int64) error
	// AuthorsByIDs 一次查询 users LEFT JOIN user_profiles
	AuthorsByIDs(ctx context.Context, userIDs []int64) (map[int64]PostAuthor, error)
}
