package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryasetia/playgate/pkg/helpers"
)

const CtxSubjectKey = "subject"

// Auth gates protected routes on the session cookie. A missing, invalid,
// or expired token all send the browser back to the entry page; none of
// them is an error response.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		subject, err := tokens.Verify(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(CtxSubjectKey, subject)
		c.Next()
	}
}
