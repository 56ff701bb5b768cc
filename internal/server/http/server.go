package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orderhub/internal/service"
	"orderhub/internal/token"
)

// Handler wires HTTP routes to the application services.
type Handler struct {
	auth     *service.AuthService
	roles    *service.RoleService
	orders   *service.OrderService
	products *service.ProductService
	verifier *token.Verifier

	log        *zap.Logger
	production bool
}

// NewHandler constructs the HTTP handler set.
func NewHandler(
	auth *service.AuthService,
	roles *service.RoleService,
	orders *service.OrderService,
	products *service.ProductService,
	verifier *token.Verifier,
	log *zap.Logger,
	production bool,
) *Handler {
	return &Handler{
		auth:       auth,
		roles:      roles,
		orders:     orders,
		products:   products,
		verifier:   verifier,
		log:        log,
		production: production,
	}
}

// RegisterRoutes mounts all routes on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(Logging(h.log), h.Recover())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/auth/refresh", h.refresh)

		authed := api.Group("", h.Authenticate())
		{
			authed.POST("/orders", h.createOrder)
			authed.GET("/orders", h.listOrders)
			authed.GET("/orders/:id", h.getOrder)

			authed.POST("/roles/associate", h.associateRole)
			authed.POST("/roles/unlink", h.unlinkRole)
			authed.GET("/roles/verify", h.verifyRole)

			authed.POST("/products", h.createProduct)
			authed.GET("/products", h.listProducts)
			authed.GET("/products/:name", h.getProduct)
		}
	}
}
