package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"order-saga/internal/handler/api"
	"order-saga/internal/handler/middleware"
	"order-saga/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewOrderRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, orderHandler *api.OrderHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupCommonRoutes(engine)

	orders := engine.Group("/api/orders")
	{
		anonymous := orders.Group("/anonymous")
		anonymous.Use(middleware.RequireSession())
		addRoutes(anonymous, []route{
			{Method: http.MethodPost, Path: "", Handler: orderHandler.Create},
			{Method: http.MethodGet, Path: "", Handler: orderHandler.List},
			{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.Get},
			{Method: http.MethodPatch, Path: "/:id/cancel", Handler: orderHandler.Cancel},
		})

		// per-route middleware keeps /anonymous out of bearer authentication
		requireUser := []gin.HandlerFunc{authMiddleware.RequireUser()}
		addRoutes(orders, []route{
			{Method: http.MethodPost, Path: "", Handler: orderHandler.Create, Mw: requireUser},
			{Method: http.MethodGet, Path: "", Handler: orderHandler.List, Mw: requireUser},
			{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.Get, Mw: requireUser},
			{Method: http.MethodPatch, Path: "/:id/cancel", Handler: orderHandler.Cancel, Mw: requireUser},
		})
	}
}

func NewStockRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, stockHandler *api.StockHandler) {
	setupMiddleware(engine, cfg, logger)
	setupCommonRoutes(engine)

	stocks := engine.Group("/api/stocks")
	addRoutes(stocks, []route{
		{Method: http.MethodGet, Path: "/batch", Handler: stockHandler.Batch},
		{Method: http.MethodGet, Path: "/:productId", Handler: stockHandler.Get},
		{Method: http.MethodPost, Path: "/:productId", Handler: stockHandler.Create},
		{Method: http.MethodPatch, Path: "/:productId", Handler: stockHandler.Adjust},
		{Method: http.MethodPatch, Path: "/:productId/reserve", Handler: stockHandler.Reserve},
	})
}

// NewHealthRouter serves only /health, for processes whose work happens on the bus.
func NewHealthRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	setupMiddleware(engine, cfg, logger)
	setupCommonRoutes(engine)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.WrapLogger(logger).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupCommonRoutes(engine *gin.Engine) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
