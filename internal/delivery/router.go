package delivery

import (
	"net/http"

	"github.com/BitSparkCode/online-shop-api/internal/middleware"
	"github.com/BitSparkCode/online-shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Auth       usecase.AuthUseCase
	Categories usecase.CategoryUseCase
	Products   usecase.ProductUseCase
	Verifier   middleware.TokenVerifier
	Registry   *prometheus.Registry
	Logger     *logrus.Logger
}

// NewRouter builds the HTTP API. /health, /metrics, /register and /login are
// public; everything else sits behind the token check.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.NewMetrics(deps.Registry).Handler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	authHandler.RegisterPublicRoutes(router)

	protected := router.Group("/")
	protected.Use(middleware.Auth(deps.Verifier, deps.Logger))
	{
		authHandler.RegisterProtectedRoutes(protected)
		NewCategoryHandler(deps.Categories, deps.Logger).RegisterRoutes(protected)
		NewProductHandler(deps.Products, deps.Logger).RegisterRoutes(protected)
	}

	return router
}
