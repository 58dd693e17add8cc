package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookbridge/internal/interface/http/middleware"
	"github.com/xiebiao/bookbridge/pkg/response"
)

// TokenRevoker Token黑名单写入
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthHandler 认证相关处理器
// 登录与注册由身份服务负责，本服务只处理登出(Token拉黑)
type AuthHandler struct {
	revoker TokenRevoker
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{revoker: revoker}
}

// Logout 登出
// @Summary      登出
// @Description  将当前Token加入黑名单，直到其自然过期
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=bool}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40100 未登录; code=40101 Token格式错误; code=40102 Token已失效
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ttl := middleware.GetAccessToken(c)
	if err := h.revoker.Revoke(c.Request.Context(), token, ttl); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}
