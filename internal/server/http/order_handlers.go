package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required"`
}

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"ownerId"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type pageResponse[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func newOrderResponse(o model.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID.String(),
		OwnerID:   o.OwnerID.String(),
		Status:    string(o.Status),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}

func (h *Handler) createOrder(c *gin.Context) {
	actorID, ok := caller(c)
	if !ok {
		h.writeError(c, errs.ErrUnauthorized, nil)
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errs.ErrInvalidInput, err.Error())
		return
	}

	items := make([]model.OrderItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.FromString(it.ProductID)
		if err != nil {
			h.writeError(c, errs.ErrInvalidOrder, nil)
			return
		}
		items = append(items, model.OrderItemRequest{ProductID: pid, Quantity: it.Quantity})
	}

	order, err := h.orders.Create(c.Request.Context(), actorID, items)
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

func (h *Handler) getOrder(c *gin.Context) {
	actorID, ok := caller(c)
	if !ok {
		h.writeError(c, errs.ErrUnauthorized, nil)
		return
	}
	orderID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		h.writeError(c, errs.ErrInvalidInput, nil)
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), actorID, orderID)
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}

func (h *Handler) listOrders(c *gin.Context) {
	actorID, ok := caller(c)
	if !ok {
		h.writeError(c, errs.ErrUnauthorized, nil)
		return
	}
	page, size := pageParams(c)

	result, err := h.orders.List(c.Request.Context(), actorID, page, size)
	if err != nil {
		h.writeError(c, err, nil)
		return
	}

	resp := pageResponse[orderResponse]{Page: result.Page, Size: result.Size, Total: result.Total}
	for _, o := range result.Items {
		resp.Items = append(resp.Items, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	return page, size
}
