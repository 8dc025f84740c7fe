package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/novadecore/personal-blog/internal/core/auth"
	resp "github.com/novadecore/personal-blog/internal/transport/http/response"
)

const KeyIdentity = "identity"

// TokenCookie 登录时种下的 cookie 名
const TokenCookie = "token"

// Auth 统一鉴权通道：优先 Authorization: Bearer，其次 token cookie，
// 两种凭证对所有鉴权端点等价
func Auth(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := extractToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		ident, err := j.Verify(tok)
		if err != nil {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, err.Error()))
			return
		}
		c.Set(KeyIdentity, ident)
		c.Next()
	}
}

// IdentityFrom 鉴权分组内必非 nil
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(KeyIdentity)
	if !ok {
		return nil
	}
	ident, _ := v.(*auth.Identity)
	return ident
}

func extractToken(c *gin.Context) string {
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	if tok, err := c.Cookie(TokenCookie); err == nil {
		return tok
	}
	return ""
}
