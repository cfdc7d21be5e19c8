package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"questionbank/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorLogger recovers panics into a 500 envelope and writes one log line
// for every request that ended in a server error or carried gin errors.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logFailure(c, start, "panic", fmt.Sprint(recovered))
				log.Printf("panic_stack request_id=%s\n%s", requestID(c), debug.Stack())

				response.ErrorWithDetails(c, http.StatusInternalServerError,
					"INTERNAL_SERVER_ERROR", "Internal Server Error",
					gin.H{"request_id": requestID(c)})
				c.Abort()
				return
			}

			for _, e := range c.Errors {
				logFailure(c, start, fmt.Sprintf("gin_%d", e.Type), e.Error())
			}
			if len(c.Errors) == 0 && c.Writer.Status() >= http.StatusInternalServerError {
				logFailure(c, start, "http_error", http.StatusText(c.Writer.Status()))
			}
		}()

		c.Next()
	}
}

func logFailure(c *gin.Context, start time.Time, kind, message string) {
	sessionID := ""
	if sess, ok := SessionFrom(c); ok {
		sessionID = sess.ID
	}
	log.Printf("request_failed kind=%s status=%d method=%s path=%s client_ip=%s session_id=%s email=%s request_id=%s latency=%s error=%q",
		kind,
		c.Writer.Status(),
		c.Request.Method,
		c.FullPath(),
		c.ClientIP(),
		sessionID,
		c.GetString(emailKey),
		requestID(c),
		time.Since(start),
		message,
	)
}

func requestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return c.GetHeader(requestIDHeader)
}
