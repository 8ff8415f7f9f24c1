package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"storefront-pricing/internal/handler/httperr"
	"storefront-pricing/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errPanic = errs.New("panic in request handler")

// ErrorHandler renders the last public error when a handler recorded one
// without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if !c.Errors[i].IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		writeInternalError(c)
	}
}

// CustomRecovery turns a panic into the standard 500 envelope. An open
// transaction is rolled back by the unit of work's deferred rollback while
// the panic unwinds, before this handler runs.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			err := errs.Wrap(errPanic, fmt.Sprint(rec))
			slog.Error("recovered from panic",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err.Error(),
				"stack", errs.ExtractStackLines(err, 12))

			_ = c.Error(err)
			writeInternalError(c)
			c.Abort()
		}()
		c.Next()
	}
}

func writeInternalError(c *gin.Context) {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	c.JSON(resp.Status, resp)
}
