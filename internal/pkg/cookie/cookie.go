package cookie

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is shared with the cart service, which issues the cookie to anonymous shoppers.
const SessionCookieName = "sessionId"

const maxSessionIDLength = 128

func GetSessionID(c *gin.Context) string {
	v, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	v = strings.TrimSpace(v)
	if len(v) > maxSessionIDLength {
		return ""
	}
	return v
}
