package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/novadecore/personal-blog/internal/storage"
	resp "github.com/novadecore/personal-blog/internal/transport/http/response"
)

type UploadHandler struct {
	store storage.ObjectStorage
}

func NewUploadHandler(store storage.ObjectStorage) *UploadHandler {
	return &UploadHandler{store: store}
}

// Image 纯透传：字节进对象存储，URL 回给前端，
// 之后由 post 的 image_urls 落库
func (h *UploadHandler) Image(c *gin.Context) {
	if h.store == nil {
		resp.FailMsg(c, resp.CodeServerError, "object storage not configured")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, "no file uploaded")
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, "cannot read uploaded file")
		return
	}
	defer f.Close()

	url, err := h.store.Put(c.Request.Context(), f, fh.Size, fh.Header.Get("Content-Type"), fh.Filename)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"url": url})
}
