package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/jwt"
	"github.com/xiebiao/bookbridge/pkg/response"
)

// Context中的用户信息键
const (
	ctxUserID   = "user_id"
	ctxUserName = "user_name"
	ctxUserRole = "user_role"
	ctxToken    = "access_token"
	ctxTokenExp = "access_token_exp"
)

// RevocationChecker Token黑名单查询
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token有效性
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  RevocationChecker
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	books.PUT("/:id/active", authMiddleware.RequireAuth(), bookHandler.SetActive)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		tokenString, ok := bearerToken(c)
		if !ok {
			if c.GetHeader("Authorization") == "" {
				response.Error(c, apperrors.ErrUnauthorized)
			} else {
				response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			}
			c.Abort()
			return
		}

		// 2. 检查Token是否在黑名单中（已登出或被强制失效）
		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 注入用户信息
		setPrincipal(c, tokenString, claims)
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有合法Token时注入用户信息，没有或无效时按匿名访客继续处理
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if revoked, err := m.blacklist.IsRevoked(c.Request.Context(), tokenString); err != nil || revoked {
			c.Next()
			return
		}

		if claims, err := m.jwtManager.ParseToken(tokenString); err == nil {
			setPrincipal(c, tokenString, claims)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setPrincipal(c *gin.Context, token string, claims *jwt.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserName, claims.Name)
	c.Set(ctxUserRole, claims.Role)
	c.Set(ctxToken, token)
	if claims.ExpiresAt != nil {
		c.Set(ctxTokenExp, claims.ExpiresAt.Time)
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 当前用户ID，匿名时为空字符串
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserName 当前用户显示名
func GetUserName(c *gin.Context) string {
	return c.GetString(ctxUserName)
}

// GetUserRole 当前用户角色
func GetUserRole(c *gin.Context) string {
	return c.GetString(ctxUserRole)
}

// GetAccessToken 当前请求的Token及剩余有效期
func GetAccessToken(c *gin.Context) (string, time.Duration) {
	token := c.GetString(ctxToken)
	exp := c.GetTime(ctxTokenExp)
	if token == "" || exp.IsZero() {
		return token, 0
	}
	return token, time.Until(exp)
}
