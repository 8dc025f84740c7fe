package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/novadecore/personal-blog/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

// Create post 与 images 同一事务落库，position 取切片下标
func (r *PostRepo) Create(ctx context.Context, p *domain.Post, imageURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		imgs, err := insertImages(tx, p.ID, imageURLs)
		if err != nil {
			return err
		}
		p.Images = imgs
		return nil
	})
}

func (r *PostRepo) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	imgs, err := r.imagesByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = imgs
	return &p, nil
}

func (r *PostRepo) ListAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	var imgs []domain.Image
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("post_id, position").
		Find(&imgs).Error; err != nil {
		return nil, err
	}
	byPost := make(map[int64][]domain.Image, len(posts))
	for _, img := range imgs {
		byPost[img.PostID] = append(byPost[img.PostID], img)
	}
	for i := range posts {
		posts[i].Images = byPost[posts[i].ID]
	}
	return posts, nil
}

// Update 字段更新与图片整组替换同一事务提交；
// replaceImages=false 时原图片集保持不动
func (r *PostRepo) Update(ctx context.Context, p *domain.Post, replaceImages bool, imageURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Model(p) 以主键定位，同时让 gorm 把新的 updated_at 回写进 p，
		// 响应里才是更新后的时间
		res := tx.Model(p).
			Select("title", "content", "status", "image_mode", "published_at", "updated_at").
			Updates(p)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if replaceImages {
			if err := tx.Where("post_id = ?", p.ID).Delete(&domain.Image{}).Error; err != nil {
				return err
			}
			imgs, err := insertImages(tx, p.ID, imageURLs)
			if err != nil {
				return err
			}
			p.Images = imgs
			return nil
		}
		imgs, err := imagesByPostTx(tx, p.ID)
		if err != nil {
			return err
		}
		p.Images = imgs
		return nil
	})
}

// Delete 先删子图片再删 post，不留孤儿
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostRepo) AuthorsByIDs(ctx context.Context, userIDs []int64) (map[int64]domain.PostAuthor, error) {
	if len(userIDs) == 0 {
		return map[int64]domain.PostAuthor{}, nil
	}
	type row struct {
		ID          int64
		Email       string
		DisplayName *string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.email, user_profiles.display_name").
		Joins("LEFT JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("users.id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.PostAuthor, len(rows))
	for _, a := range rows {
		out[a.ID] = domain.PostAuthor{ID: a.ID, Email: a.Email, DisplayName: a.DisplayName}
	}
	return out, nil
}

func (r *PostRepo) imagesByPost(ctx context.Context, postID int64) ([]domain.Image, error) {
	return imagesByPostTx(r.db.WithContext(ctx), postID)
}

func imagesByPostTx(tx *gorm.DB, postID int64) ([]domain.Image, error) {
	var imgs []domain.Image
	err := tx.Where("post_id = ?", postID).Order("position").Find(&imgs).Error
	return imgs, err
}

func insertImages(tx *gorm.DB, postID int64, urls []string) ([]domain.Image, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	imgs := make([]domain.Image, 0, len(urls))
	for i, u := range urls {
		imgs = append(imgs, domain.Image{PostID: postID, ImageURL: u, Position: i})
	}
	if err := tx.Create(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}
