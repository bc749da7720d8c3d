package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger hands every request a log entry carrying the request id and
// writes one access line when the request is done. Successful hits on public
// assets are not logged.
func RequestLogger(env *Environment, appFields logrus.Fields) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestLog := env.Logger.WithFields(appFields).WithField("request.id", c.GetString(env.Constants.RequestIdKey))
		c.Set(env.Constants.LogKey, requestLog)

		c.Next()

		if isPublicAssetHit(c) {
			return
		}
		requestLog.WithFields(accessFields(c, time.Since(start), requestLog)).Info("")
	}
}

func isPublicAssetHit(c *gin.Context) bool {
	status := c.Writer.Status()
	return strings.HasPrefix(c.Request.URL.Path, "/public/") && (status == http.StatusOK || status == http.StatusNotModified)
}

func accessFields(c *gin.Context, latency time.Duration, log *logrus.Entry) logrus.Fields {
	remote, err := GetRequestIpData(c.Request)
	if err != nil {
		log.WithField("func", "RequestLogger").Debug(err.Error())
	}
	forwardedFor, err := GetForwardedForIpData(c.Request)
	if err != nil {
		log.WithField("func", "RequestLogger").Debug(err.Error())
	}

	return logrus.Fields{
		"latency":            latency,
		"ip":                 remote.Ip,
		"port":               remote.Port,
		"forwarded_for.ip":   forwardedFor.Ip,
		"forwarded_for.port": forwardedFor.Port,
		"method":             c.Request.Method,
		"path":               c.Request.URL.RequestURI(),
		"status":             c.Writer.Status(),
		"body_size":          c.Writer.Size(),
		"error":              c.Errors.ByType(gin.ErrorTypePrivate).String(),
	}
}

// RequestId tags the request with the id from X-Request-Id, or a fresh uuid4
// when the caller sent none, and echoes it back in the response.
func RequestId(env *Environment) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := requestId(c.Request)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(env.Constants.RequestIdKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func requestId(r *http.Request) (string, error) {
	if id := r.Header.Get("X-Request-Id"); id != "" {
		return id, nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// RequestLog returns the request scoped log entry set up by RequestLogger.
// Falls back to the environment logger for handlers mounted without it.
func RequestLog(env *Environment, c *gin.Context) *logrus.Entry {
	if v, exists := c.Get(env.Constants.LogKey); exists {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(env.Logger)
}
