package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the access token and resolves the tenant scope.
// company_id always comes from the verified claims, never from the request
// body or query, so a client cannot point an operation at another tenant.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code, msg := "INVALID_TOKEN", "Invalid or malformed token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, msg = "TOKEN_EXPIRED", "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		companyID, _ := claims["company_id"].(string)
		userID, _ := claims["user_id"].(string)
		employeeID, _ := claims["employee_id"].(string)

		if companyID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token has no tenant scope", nil)
			c.Abort()
			return
		}

		c.Set(string(ContextCompanyID), companyID)
		c.Set(string(ContextEmployeeID), employeeID)
		c.Set("user_id", userID)

		c.Next()
	}
}
