package utils

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedrohsouza/marmitex/models"
)

const guestKeySession = "guest_key"

// CurrentUser returns the authenticated user from the request context, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := val.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// CurrentUserID returns the authenticated user's id, or nil for guests.
func CurrentUserID(c *gin.Context) *uint {
	user, ok := CurrentUser(c)
	if !ok {
		return nil
	}
	id := user.ID
	return &id
}

// CartOwnerKey resolves the cart identity for the request: authenticated
// users get a stable per-user key, guests get a session-backed key minted on
// first use.
func CartOwnerKey(c *gin.Context) string {
	if user, ok := CurrentUser(c); ok {
		return fmt.Sprintf("user:%d", user.ID)
	}

	session := sessions.Default(c)
	if key, ok := session.Get(guestKeySession).(string); ok && key != "" {
		return key
	}

	key := "guest:" + uuid.New().String()
	session.Set(guestKeySession, key)
	if err := session.Save(); err != nil {
		LogError("Failed to persist guest session key: %v", err)
	}
	return key
}
