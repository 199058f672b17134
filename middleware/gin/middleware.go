package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/middleware"
)

// BindQuery decodes the request query string with schema s, stores the
// qstate.Decoded in the request context, and on failure responds 400 with the
// Issues payload.
func BindQuery(s qstate.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := qstate.DecodeStateWithMeta(c.Request.Context(), s, qstate.ParseQuery(c.Request.URL.RawQuery))
		if err != nil {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), d))
		c.Next()
	}
}

// GetDecoded fetches the decoded query state from gin.Context.
func GetDecoded(c *gin.Context) (qstate.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
