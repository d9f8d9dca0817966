package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"crm-server/internal/config"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure"
	middleware "crm-server/internal/interfaces/httpserver/middlewares"
	"crm-server/internal/interfaces/httpserver/routes/auth"
	v1 "crm-server/internal/interfaces/httpserver/routes/v1"
	"crm-server/swagger"

	_ "crm-server/docs/swagger"
)

type HTTPServer struct {
	engine    *gin.Engine
	infra     *infrastructure.Infrastructure
	users     *user.Service
	v1Route   *v1.V1Route
	authRoute *auth.AuthRoute
	config    *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	authRoute *auth.AuthRoute,
	users *user.Service,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		users,
		v1Route,
		authRoute,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", server.readyz)

	server.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.EnableSwagger {
		server.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		swagger.Register(server.engine)
	}

	return &server
}

// readyz reports ready only when the database answers a ping.
func (s *HTTPServer) readyz(c *gin.Context) {
	sqlDB, err := s.infra.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.users, httpServer.infra.Logger),
		middleware.RateLimitMiddleware(httpServer.config.RateLimit),
	)

	httpServer.authRoute.RegisterRouter(root)
	httpServer.v1Route.RegisterPublicRouter(root)
	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
