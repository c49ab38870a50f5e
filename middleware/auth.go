package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireToken chỉ kiểm tra request CÓ token hay không, chưa xác thực nội
// dung token. Đây là lỗ hổng đã biết của hệ thống hiện tại, giữ nguyên
// hành vi, không coi là bảo mật thật.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")

		// Client web gửi qua Authorization: Bearer <token>
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
