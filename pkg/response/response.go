package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"docgen-srv/pkg/discord"
	pkgErrors "docgen-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 response with the standard envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   "Success",
		Data:      data,
	})
}

// Error writes an error response. *pkgErrors.HTTPError values keep their
// status code and message; anything else becomes a 500. Internal errors are
// forwarded to the notifier when one is configured.
func Error(c *gin.Context, err error, notifier discord.IDiscord) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.StatusCode,
			Message:   httpErr.Message,
		})
		if httpErr.StatusCode >= http.StatusInternalServerError {
			notify(c, err, notifier)
		}
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   "Internal server error",
	})
	notify(c, err, notifier)
}

// PanicError writes a 500 response for a recovered panic value.
func PanicError(c *gin.Context, recovered any, notifier discord.IDiscord) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   "Internal server error",
	})
	notify(c, fmt.Errorf("panic: %v", recovered), notifier)
}

func notify(c *gin.Context, err error, notifier discord.IDiscord) {
	if notifier == nil {
		return
	}
	// Fire and forget; notification must never delay the response.
	go func(path string) {
		_ = notifier.SendError(context.Background(), "API error", path, err)
	}(c.FullPath())
}
