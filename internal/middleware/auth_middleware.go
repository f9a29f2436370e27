package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// JWTAuthMiddleware accepts HS256 bearer tokens issued by the platform's auth
// service and exposes the subject as the acting user id.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token.")
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		userID, err := subjectFromClaims(token.Claims)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token subject.")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// subjectFromClaims reads "sub", falling back to the legacy "user_id" claim.
func subjectFromClaims(claims jwt.Claims) (uuid.UUID, error) {
	sub, err := claims.GetSubject()
	if err == nil && sub != "" {
		return uuid.Parse(sub)
	}
	if mapClaims, ok := claims.(jwt.MapClaims); ok {
		if raw, ok := mapClaims[userIDKey].(string); ok {
			return uuid.Parse(raw)
		}
	}
	return uuid.Nil, fmt.Errorf("no subject")
}

// GetUserID returns the authenticated user id set by JWTAuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
