package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxCallerID    = "caller_id"    // used as submittedBy on status history entries
	CtxCallerEmail = "caller_email" // empty for app-key callers
	CtxCallerRole  = "caller_role"  // adminUser or storeUser
)

const (
	RoleAdminUser = "adminUser"
	RoleStoreUser = "storeUser"
)

// Auth authenticates the caller either as a user principal (JWT bearer) or
// as a machine caller (X-App-Key checked against a bcrypt hash). Machine
// callers act with the admin role, matching the store-operator API usage.
func Auth(jwtSecret, appKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. App-key callers: no user principal exists
		if appKey := c.GetHeader("X-App-Key"); appKey != "" {
			if appKeyHash == "" || bcrypt.CompareHashAndPassword([]byte(appKeyHash), []byte(appKey)) != nil {
				c.JSON(401, gin.H{"error": "invalid app key"})
				c.Abort()
				return
			}

			keyID := c.GetHeader("X-App-Key-ID")
			if keyID == "" {
				keyID = "appkey"
			}

			c.Set(CtxCallerID, keyID)
			c.Set(CtxCallerEmail, "")
			c.Set(CtxCallerRole, RoleAdminUser)
			c.Next()
			return
		}

		// 2. User principals: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !parsedToken.Valid {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)
		role, _ := claims["role"].(string)
		if role != RoleAdminUser {
			role = RoleStoreUser
		}

		// submittedBy prefers the display name, falling back to email
		callerID := name
		if callerID == "" {
			callerID = email
		}
		if callerID == "" {
			c.JSON(401, gin.H{"error": "token has no usable identity"})
			c.Abort()
			return
		}

		c.Set(CtxCallerID, callerID)
		c.Set(CtxCallerEmail, email)
		c.Set(CtxCallerRole, role)
		c.Next()
	}
}

// RequireAdmin restricts a route to admin callers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxCallerRole) != RoleAdminUser {
			c.JSON(403, gin.H{
				"success": false,
				"error":   "Access denied: admin role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
