package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/novadecore/personal-blog/internal/service"
	mdw "github.com/novadecore/personal-blog/internal/transport/http/middleware"
	resp "github.com/novadecore/personal-blog/internal/transport/http/response"
)

type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me 没写过 profile 时 data 为 null，不报 404
func (h *ProfileHandler) Me(c *gin.Context) {
	ident := mdw.IdentityFrom(c)
	p, err := h.profiles.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toProfileDTO(p))
}

func (h *ProfileHandler) Put(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, err.Error())
		return
	}
	p, err := h.profiles.Upsert(c.Request.Context(), mdw.IdentityFrom(c), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toProfileDTO(p))
}
