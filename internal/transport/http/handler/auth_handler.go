package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novadecore/personal-blog/internal/core/config"
	"github.com/novadecore/personal-blog/internal/service"
	mdw "github.com/novadecore/personal-blog/internal/transport/http/middleware"
	resp "github.com/novadecore/personal-blog/internal/transport/http/response"
)

type AuthHandler struct {
	acct service.AccountService
	cfg  *config.Config
}

func NewAuthHandler(acct service.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{acct: acct, cfg: cfg}
}

type registerIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"omitempty,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, err.Error())
		return
	}
	u, err := h.acct.Register(c.Request.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": itoa(u.ID), "email": u.Email})
}

type loginIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailMsg(c, resp.CodeBadRequest, err.Error())
		return
	}
	token, u, err := h.acct.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	h.setTokenCookie(c, token, h.cfg.Cookie.MaxAgeDays*24*3600)
	// token 同时走 body 和 cookie 两条通道
	resp.OK(c, gin.H{
		"token": token,
		"user":  gin.H{"id": itoa(u.ID), "email": u.Email},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// 无服务端吊销，已签发 token 到期前仍有效
	h.setTokenCookie(c, "", -1)
	resp.OK(c, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ident := mdw.IdentityFrom(c)
	u, err := h.acct.CurrentUser(c.Request.Context(), ident)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id":          itoa(u.ID),
		"email":       u.Email,
		"create_time": u.CreatedAt.Format(time.RFC3339),
		"update_time": u.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	if h.cfg.IsProd() {
		// 跨站前端需要 SameSite=None + Secure
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(mdw.TokenCookie, token, maxAge, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mdw.TokenCookie, token, maxAge, "/", "", false, true)
}
