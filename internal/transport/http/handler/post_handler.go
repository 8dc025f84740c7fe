package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/novadecore/personal-blog/internal/domain"
	"github.com/novadecore/personal-blog/internal/service"
	mdw "github.com/novadecore/personal-blog/internal/transport/http/middleware"
	resp "github.com/novadecore/personal-blog/internal/transport/http/response"
)

type PostHandler struct {
	posts service.AuthoringService
}

func NewPostHandler(posts service.AuthoringService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) List(c *gin.Context) {
	views, err := h.posts.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toPostDTOs(views))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toPostDTO(*v))
}

type createPostIn struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Status    string   `json:"status"`
	ImageMode *string  `json:"image_mode"`
	ImageURLs []string `json:"image_urls"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var in createPostIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, err.Error())
		return
	}
	v, err := h.posts.Create(c.Request.Context(), mdw.IdentityFrom(c), service.CreatePostInput{
		Title:     in.Title,
		Content:   in.Content,
		Status:    in.Status,
		ImageMode: in.ImageMode,
		ImageURLs: in.ImageURLs,
	})
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, toPostDTO(*v))
}

// updatePostIn 指针即“字段已提交”哨兵；image_urls 提交空数组=清空图片
type updatePostIn struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Status    *string   `json:"status"`
	ImageMode *string   `json:"image_mode"`
	ImageURLs *[]string `json:"image_urls"`
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in updatePostIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, err.Error())
		return
	}
	v, err := h.posts.Update(c.Request.Context(), mdw.IdentityFrom(c), id, domain.PostUpdate{
		Title:     in.Title,
		Content:   in.Content,
		Status:    in.Status,
		ImageMode: in.ImageMode,
		ImageURLs: in.ImageURLs,
	})
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toPostDTO(*v))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), mdw.IdentityFrom(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "post deleted successfully"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		resp.FailMsg(c, resp.CodeBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}
