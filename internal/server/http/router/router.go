package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmanet/internal/pkg/auth"
	"github.com/polkiloo/pharmanet/internal/server/http/handlers"
	"github.com/polkiloo/pharmanet/internal/server/http/middleware"
)

func newEngine(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	return engine
}

// SetupPharmacy configures the router of a pharmacy instance.
func SetupPharmacy(facade handlers.PharmacyFacade, verifier auth.TokenVerifier, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)

	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	catalog := engine.Group("/catalog")
	catalog.GET("/products", catalogHandler.List)
	catalog.GET("/products/:code", catalogHandler.Get)

	orders := engine.Group("/orders")
	orders.POST("", middleware.ServiceTokenRequired(verifier), orderHandler.Commit)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)

	return engine
}

// SetupOrchestrator configures the router of the orchestrator.
func SetupOrchestrator(facade handlers.OrchestratorFacade, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)

	routingHandler := handlers.NewRoutingHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/pharmacies", routingHandler.Pharmacies)
	engine.GET("/products", routingHandler.Products)

	orders := engine.Group("/orders")
	orders.POST("", routingHandler.Route)
	orders.GET("", routingHandler.List)
	orders.GET("/:external_order_id", routingHandler.Get)

	return engine
}
