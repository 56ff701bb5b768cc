package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"orderhub/internal/errs"
)

const callerKey = "orderhub.caller"

// Logging records one line per request.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

// Recover turns panics into a generic internal error response.
func (h *Handler) Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				h.log.Error("panic recovered", zap.Any("panic", r), zap.Stack("stack"))
				h.writeError(c, errs.ErrInternal, nil)
			}
		}()
		c.Next()
	}
}

// Authenticate verifies the bearer access token and stores the caller's id in
// the request context. Handlers read it with caller() and pass it to services
// explicitly; nothing downstream touches the token.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(raw, prefix) {
			h.writeError(c, errs.ErrUnauthorized, nil)
			return
		}
		claims, err := h.verifier.Verify(strings.TrimPrefix(raw, prefix))
		if err != nil {
			h.writeError(c, err, nil)
			return
		}
		id, err := claims.UserID()
		if err != nil {
			h.writeError(c, err, nil)
			return
		}
		c.Set(callerKey, id)
		c.Next()
	}
}

// caller returns the authenticated user id set by Authenticate.
func caller(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
