package utils

import (
	"net/http"
	"time"

	"sshtunnelapi/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs every request with its status and duration.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		// Log based on status code level
		if status >= 500 {
			logger.Errorf("HTTP %s %s - Status: %d, Duration: %v, IP: %s",
				c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP())
		} else if status >= 400 {
			logger.Warnf("HTTP %s %s - Status: %d, Duration: %v, IP: %s",
				c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP())
		} else {
			logger.Infof("HTTP %s %s - Status: %d, Duration: %v, IP: %s",
				c.Request.Method, c.Request.URL.Path, status, elapsed, c.ClientIP())
		}
	}
}

// JSONResponse sends a JSON response with the specified HTTP status code.
func JSONResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// ErrorResponse logs and sends a standardized error response with HTTP 400 status.
func ErrorResponse(c *gin.Context, err error) {
	ErrorResponseWithStatus(c, http.StatusBadRequest, err, nil)
}

// ErrorResponseWithStatus logs and sends an error response with the given status.
// details, when non-nil, is included under the "details" key.
func ErrorResponseWithStatus(c *gin.Context, status int, err error, details interface{}) {
	logger.Errorf("API Error: %v", err)
	body := gin.H{
		"error": err.Error(),
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}
