package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chirraaggggg/github-roaster/pkg/apperror"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

const (
	GinContextKeySessionID = "sessionID"

	sessionCookieName   = "roaster_session"
	sessionCookieMaxAge = 24 * 60 * 60
)

// SessionMiddleware assigns every browser an anonymous session ID so the
// profile cache can be keyed per visitor. This is a cache key, not an
// identity: there is no authentication here.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(GinContextKeySessionID, sessionID)
		c.Next()
	}
}

func GetSessionIDFromGinContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return "", false
	}
	sessionID, ok := v.(string)
	return sessionID, ok
}

// CORSMiddleware permits the browser frontend to call the API from another
// origin during development.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (wildcard || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ErrorMiddleware renders errors pushed into the gin context as JSON with
// the status the apperror taxonomy maps them to.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", appErr, zap.String("path", c.Request.URL.Path))
		} else {
			log.Warn("request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status),
				zap.String("reason", appErr.Message))
		}

		c.JSON(status, appErr.ToJSON())
	}
}
