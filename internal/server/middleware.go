package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mbellotti/go-visit-counter/pkg/snowflake"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

// Tracing opens one span per request and guarantees it ends on every exit
// path, panics included. Request attributes go on before the handler runs,
// response attributes after.
func Tracing(tracer telemetry.Tracer, ids snowflake.Snowflake) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), spanName(c.Request.URL.Path))
		defer span.End()

		span.SetAttribute("http.method", c.Request.Method)
		span.SetAttribute("http.path", c.Request.URL.Path)
		span.SetAttribute("http.remote_ip", c.ClientIP())
		if ids != nil {
			span.SetAttribute("request_id", strconv.FormatInt(ids.Generate(), 10))
		}

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()

		c.Next()

		span.SetAttribute("http.status_code", strconv.Itoa(c.Writer.Status()))
		span.SetAttribute("http.response_time_ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
	}
}

// Recovery converts a handler panic into a 500 after logging it.
func Recovery(log telemetry.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					telemetry.String("panic", fmt.Sprintf("%v", r)),
					telemetry.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()

		c.Next()
	}
}

func spanName(path string) string {
	if path == "/" {
		return "handle_root_request"
	}
	name := strings.Trim(path, "/")
	name = strings.ReplaceAll(name, "/", "_")
	return "handle_" + name + "_request"
}
