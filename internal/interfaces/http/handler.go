// Package http adapts a middleware chain to gin.
// This is a thin adapter layer that translates gin requests into chain work items.
package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/approval-chain/internal/application/middleware"
	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RequestDispatcher dispatches one middleware request
type RequestDispatcher interface {
	Dispatch(item middleware.Request) chain.Outcome[middleware.Response]
}

// maxBodyBytes bounds how much of a request body is handed to the chain
const maxBodyBytes = 1 << 20

// ChainHandler returns a gin handler that runs every request through d
func ChainHandler(d RequestDispatcher, logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
		if err != nil {
			if logger != nil {
				logger.Error("Failed to read request body", "error", err)
			}
			c.String(http.StatusBadRequest, "invalid request body")
			return
		}

		req := ToRequest(c.Request.Header, string(body))
		resp := middleware.ResponseFor(d.Dispatch(req))

		if logger != nil {
			logger.Info("Request dispatched",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", resp.Status,
			)
		}

		c.String(resp.Status, resp.Body)
	}
}

// ToRequest flattens HTTP headers into a chain request, keeping the first value of each header
func ToRequest(header http.Header, body string) middleware.Request {
	headers := make(map[string]string, len(header))
	for name, values := range header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}
	return middleware.Request{Headers: headers, Body: body}
}

// NewRouter creates a gin engine that serves every method on path through d
func NewRouter(path string, d RequestDispatcher, logger Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Any(path, ChainHandler(d, logger))
	return router
}
