package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/requestdata"
)

// SessionClaims is the token payload the editor frontend sends with every
// request. The session id groups version records so undo/redo cursors can
// be scoped per editing session.
type SessionClaims struct {
	WorkspaceID string `json:"workspace_id"`
	SessionID   string `json:"session_id"`
	jwt.RegisteredClaims
}

type SessionMiddleware struct {
	log       *logger.Logger
	jwtSecret []byte
}

func NewSessionMiddleware(log *logger.Logger, jwtSecret string) *SessionMiddleware {
	return &SessionMiddleware{
		log:       log.With("middleware", "SessionMiddleware"),
		jwtSecret: []byte(jwtSecret),
	}
}

func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		workspaceID, err := uuid.Parse(claims.WorkspaceID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token missing workspace"})
			return
		}
		sessionID, err := uuid.Parse(claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token missing session"})
			return
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			WorkspaceID: workspaceID,
			SessionID:   sessionID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
