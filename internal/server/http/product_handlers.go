package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"orderhub/internal/errs"
	"orderhub/internal/model"
	"orderhub/internal/service"
)

type createProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"required"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func newProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) createProduct(c *gin.Context) {
	actorID, ok := caller(c)
	if !ok {
		h.writeError(c, errs.ErrUnauthorized, nil)
		return
	}
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errs.ErrInvalidInput, err.Error())
		return
	}

	p, err := h.products.Create(c.Request.Context(), actorID, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, newProductResponse(*p))
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.products.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*p))
}

func (h *Handler) listProducts(c *gin.Context) {
	page, size := pageParams(c)
	result, err := h.products.List(c.Request.Context(), page, size)
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	resp := pageResponse[productResponse]{Page: result.Page, Size: result.Size, Total: result.Total}
	for _, p := range result.Items {
		resp.Items = append(resp.Items, newProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
