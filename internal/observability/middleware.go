package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys read by RequestLogger.
const (
	ResourceKey = "shippo_resource"
	DetailKey   = "shippo_detail"
)

// TagResource names the API resource a route serves.
func TagResource(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ResourceKey, resource)
		c.Next()
	}
}

// RequestLogger logs one api_request event per request. Rejected requests
// carry the detail message the handler sent.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn().Str("detail", c.GetString(DetailKey))
		default:
			event = logger.Info()
		}
		if resource := c.GetString(ResourceKey); resource != "" {
			event = event.Str("resource", resource)
		}
		if id := c.Param("id"); id != "" {
			event = event.Str("object_id", id)
		}

		event.
			Str("request_id", c.GetHeader("X-Request-Id")).
			Str("method", c.Request.Method).
			Str("route", routeOf(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("api_request")
	}
}

// RequestMetricsMiddleware labels each request with the route pattern, so
// object ids do not explode the label set.
func RequestMetricsMiddleware(server string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordHTTPRequest(server, c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}
