package handler

import (
	"strconv"
	"time"

	"github.com/novadecore/personal-blog/internal/domain"
	"github.com/novadecore/personal-blog/internal/service"
)

// 边界编解码层：数值 id 只在这里转十进制字符串，
// 领域模型内部保持 int64（前端运行时的整数精度有限）

type authorDTO struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
}

type imageDTO struct {
	ImageID  string `json:"image_id"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
}

type postDTO struct {
	PostID      string     `json:"post_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	ImageMode   *string    `json:"image_mode"`
	PublishedAt *time.Time `json:"published_at"`
	CreateTime  time.Time  `json:"create_time"`
	UpdateTime  time.Time  `json:"update_time"`
	Author      *authorDTO `json:"author,omitempty"`
	Images      []imageDTO `json:"images"`
}

type profileDTO struct {
	UserID      string  `json:"user_id"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Role        *string `json:"role"`
	AvatarURL   *string `json:"avatar_url"`
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func toPostDTO(v service.PostView) postDTO {
	out := postDTO{
		PostID:      itoa(v.ID),
		UserID:      itoa(v.UserID),
		Title:       v.Title,
		Content:     v.Content,
		Status:      v.Status,
		ImageMode:   v.ImageMode,
		PublishedAt: v.PublishedAt,
		CreateTime:  v.CreatedAt,
		UpdateTime:  v.UpdatedAt,
		Images:      make([]imageDTO, 0, len(v.Images)),
	}
	if v.Author != nil {
		out.Author = &authorDTO{
			ID:          itoa(v.Author.ID),
			Email:       v.Author.Email,
			DisplayName: v.Author.DisplayName,
		}
	}
	for _, img := range v.Images {
		out.Images = append(out.Images, imageDTO{
			ImageID:  itoa(img.ID),
			ImageURL: img.ImageURL,
			Position: img.Position,
		})
	}
	return out
}

func toPostDTOs(views []service.PostView) []postDTO {
	out := make([]postDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toPostDTO(v))
	}
	return out
}

func toProfileDTO(p *domain.Profile) *profileDTO {
	if p == nil {
		return nil
	}
	return &profileDTO{
		UserID:      itoa(p.UserID),
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		Role:        p.Role,
		AvatarURL:   p.AvatarURL,
	}
}
