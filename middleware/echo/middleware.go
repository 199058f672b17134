package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/middleware"
)

// BindQuery decodes the request query string with schema s, stores the
// qstate.Decoded in context on success, or returns 400 with Issues.
func BindQuery(s qstate.Schema) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			d, err := qstate.DecodeStateWithMeta(req.Context(), s, qstate.ParseQuery(req.URL.RawQuery))
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			c.SetRequest(req.WithContext(middleware.ContextWithDecoded(req.Context(), d)))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded query state from echo.Context.
func GetDecoded(c echo.Context) (qstate.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
