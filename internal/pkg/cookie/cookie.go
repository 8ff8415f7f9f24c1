package cookie

import "github.com/gin-gonic/gin"

// The session service sets this cookie; this API only reads it.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
