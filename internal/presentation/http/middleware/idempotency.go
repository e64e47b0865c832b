package middleware

import (
	"bytes"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/internal/presentation/http/handler"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a create request is retried
// with the same Idempotency-Key by the same caller. Only 2xx responses are
// stored, so a rejected submission can be corrected and resent.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		subject := handler.GetSubject(c)
		if idempotencyKey == "" || subject == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, subject)
		if err != nil {
			log.Printf("Idempotency lookup failed: %v", err)
			c.Next()
			return
		}

		if existing != nil {
			if !existing.IsExpired() {
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
				return
			}
			// The unique index still holds the stale key
			if _, err := config.Repo.DeleteExpired(ctx); err != nil {
				log.Printf("Failed to purge expired idempotency keys: %v", err)
			}
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			ikey := &entity.IdempotencyKey{
				Key:          idempotencyKey,
				Subject:      subject,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: status,
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			}
			if err := config.Repo.Create(ctx, ikey); err != nil {
				log.Printf("Failed to store idempotency key: %v", err)
			}
		}
	}
}
