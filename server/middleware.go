package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id of every request in the response
const RequestIDHeader = "X-Request-ID"

// requestLogger tags the request with an id, logs it once finished and
// counts it in the request metric.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.requests.WithLabelValues(path, c.Request.Method, strconv.Itoa(status)).Inc()
		log.WithFields(log.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start),
			"client":     c.ClientIP(),
		}).Info("[Server] Request served")
	}
}

// recovery turns a panic inside a handler into the usual error payload
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("request_id", c.GetString("request_id")).
			Error("[Server] Recovered from panic: ", recovered)
		c.AbortWithStatusJSON(200, gin.H{"error": fmt.Sprint(recovered)})
	})
}
