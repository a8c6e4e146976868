package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AdminUserKey = "admin_user"

// AdminCookie 承载管理员身份的已签名 cookie 名称
const AdminCookie = "admin_token"

// AdminUser 管理员档案，评论署名时使用
type AdminUser struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Avatar   string `json:"avatar"`
}

type adminClaims struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Avatar   string `json:"avatar"`
	jwt.RegisteredClaims
}

// LoadAdmin 尝试从签名 cookie 解析管理员身份并放进上下文。
// 任何解析失败都按匿名访客处理，不中断请求。
func LoadAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin := resolveAdmin(c); admin != nil {
			c.Set(AdminUserKey, admin)
		}
		c.Next()
	}
}

// AdminRequired 管理员专属路由守卫，没有有效身份时直接 403 拒绝
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(AdminUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Unauthorized: Admin access required.",
			})
			return
		}
		c.Next()
	}
}

// GetAdmin 从上下文取出管理员档案，匿名请求返回 nil
func GetAdmin(c *gin.Context) *AdminUser {
	v, exists := c.Get(AdminUserKey)
	if !exists {
		return nil
	}
	admin, ok := v.(*AdminUser)
	if !ok {
		return nil
	}
	return admin
}

func resolveAdmin(c *gin.Context) *AdminUser {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		return nil
	}

	tokenStr, err := c.Cookie(AdminCookie)
	if err != nil || tokenStr == "" {
		return nil
	}

	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	admin := &AdminUser{
		Nickname: claims.Nickname,
		Email:    claims.Email,
		Website:  claims.Website,
		Avatar:   claims.Avatar,
	}
	// cookie 未携带档案字段时退回到环境变量里的站长档案
	if admin.Nickname == "" {
		admin.Nickname = os.Getenv("ADMIN_NICKNAME")
	}
	if admin.Email == "" {
		admin.Email = os.Getenv("ADMIN_EMAIL")
	}
	if admin.Website == "" {
		admin.Website = os.Getenv("ADMIN_WEBSITE")
	}
	if admin.Avatar == "" {
		admin.Avatar = os.Getenv("ADMIN_AVATAR")
	}
	if admin.Nickname == "" || admin.Email == "" {
		return nil
	}
	return admin
}
