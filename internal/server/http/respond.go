// Package http exposes the service operations over HTTP and is the single
// boundary that formats every domain failure into the uniform error envelope.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"orderhub/internal/errs"
)

// apiError is the uniform error envelope returned for every failure.
type apiError struct {
	Success   bool      `json:"success"`
	ErrorCode string    `json:"errorCode"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	TraceID   string    `json:"traceId"`
	Details   any       `json:"details,omitempty"`
}

// traceID returns a short per-response correlation id.
func traceID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "00000000"
	}
	return id.String()[:8]
}

// writeError maps err to the envelope. Domain errors pass their code, status
// and message through; anything else is logged with full detail and surfaced
// as a generic internal error. details reaches the client only outside
// production mode.
func (h *Handler) writeError(c *gin.Context, err error, details any) {
	trace := traceID()
	e := errs.From(err)

	if e == errs.ErrInternal {
		h.log.Error("internal error",
			zap.String("traceId", trace),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		if !h.production {
			details = err.Error()
		}
	} else {
		h.log.Debug("request failed",
			zap.String("traceId", trace),
			zap.String("code", string(e.Code)),
			zap.Error(err),
		)
	}

	if h.production {
		details = nil
	}

	c.AbortWithStatusJSON(e.Status, apiError{
		Success:   false,
		ErrorCode: string(e.Code),
		Status:    e.Status,
		Message:   e.Message,
		Timestamp: time.Now().UTC(),
		TraceID:   trace,
		Details:   details,
	})
}
