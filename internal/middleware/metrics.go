// Package middleware holds gin middleware specific to this service, as
// opposed to pkg/middleware which is generic enough to reuse elsewhere.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-scheduler/pkg/metrics"
)

// Metrics returns middleware that records every request against reg.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reg == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		reg.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), duration)
	}
}
