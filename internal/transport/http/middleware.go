package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "sessionid"
	flashCookie   = "flash"
	// год; сессии чистятся отдельно по last_seen_at
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// sessionIDFromCookie returns uuid.Nil when the cookie is absent or broken.
func sessionIDFromCookie(c *gin.Context) uuid.UUID {
	raw, err := c.Cookie(sessionCookie)
	if err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func setSessionCookie(c *gin.Context, id uuid.UUID) {
	c.SetCookie(sessionCookie, id.String(), sessionCookieMaxAge, "/", "", false, true)
}

func setFlash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 60, "/", "", false, false)
}

// takeFlash reads and clears the one-shot flash message.
func takeFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, false)
	return msg
}

// RequireAPIKey guards the admin group.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-Key") != key {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
