package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency guards POST endpoints against double submission. A replay
// with the same Idempotency-Key gets the original response back; a
// concurrent duplicate is rejected while the first request holds the
// lock.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		cached, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		// short expiry so a crashed request cannot wedge the key
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is already being processed",
			})
			return
		}

		writer := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		ctx := c.Request.Context()
		if writer.Status() >= 200 && writer.Status() < 300 {
			rdb.Set(ctx, cacheKey, writer.buf.String(), 24*time.Hour)
		}
		rdb.Del(ctx, lockKey)
	}
}
