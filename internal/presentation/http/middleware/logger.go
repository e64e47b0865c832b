package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/presentation/http/handler"
)

// LoggerMiddleware logs one line per request, tagged with a short request ID
// and the authenticated user when there is one
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		tag := requestID
		if len(tag) > 8 {
			tag = tag[:8]
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		// set by AuthMiddleware on protected routes
		user := handler.GetUserEmail(c)
		if user == "" {
			user = "-"
		}

		log.Printf("[%s] %s | %d | %v | %s | %s | %s",
			tag,
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			user,
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", tag, e.Err)
		}
	}
}
