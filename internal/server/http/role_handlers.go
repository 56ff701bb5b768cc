package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"orderhub/internal/errs"
	"orderhub/internal/service"
)

type roleRequest struct {
	UserID   string `json:"userId" binding:"required"`
	RoleName string `json:"roleName" binding:"required"`
}

// Role administration requires ADMIN; the check is done here because the
// service keeps associate/unlink free of caller context for reuse in register.
func (h *Handler) requireAdmin(c *gin.Context) (uuid.UUID, bool) {
	actorID, ok := caller(c)
	if !ok {
		h.writeError(c, errs.ErrUnauthorized, nil)
		return uuid.Nil, false
	}
	isAdmin, err := h.roles.Verify(c.Request.Context(), actorID, service.AdminRole)
	if err != nil {
		h.writeError(c, err, nil)
		return uuid.Nil, false
	}
	if !isAdmin {
		h.writeError(c, errs.ErrUnauthorized, nil)
		return uuid.Nil, false
	}
	return actorID, true
}

func (h *Handler) associateRole(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errs.ErrInvalidInput, err.Error())
		return
	}
	userID, err := uuid.FromString(req.UserID)
	if err != nil {
		h.writeError(c, errs.ErrInvalidInput, nil)
		return
	}
	if err := h.roles.Associate(c.Request.Context(), userID, req.RoleName); err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *Handler) unlinkRole(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errs.ErrInvalidInput, err.Error())
		return
	}
	userID, err := uuid.FromString(req.UserID)
	if err != nil {
		h.writeError(c, errs.ErrInvalidInput, nil)
		return
	}
	if err := h.roles.Unlink(c.Request.Context(), userID, req.RoleName); err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) verifyRole(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	userID, err := uuid.FromString(c.Query("userId"))
	if err != nil {
		h.writeError(c, errs.ErrInvalidInput, nil)
		return
	}
	roleName := c.Query("roleName")
	if roleName == "" {
		h.writeError(c, errs.ErrInvalidInput, nil)
		return
	}
	has, err := h.roles.Verify(c.Request.Context(), userID, roleName)
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasRole": has})
}
