package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/blog-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/blog-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/blog-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/blog-service/internal/platform/config"
	"github.com/jsamuelsen/blog-service/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig names the service in traces.
	AppConfig *config.AppConfig

	HealthHandler *handlers.HealthHandler
	AuthorHandler *handlers.AuthorHandler
	PostHandler   *handlers.PostHandler
	LoginHandler  *handlers.LoginHandler

	// Timeout is the deadline of API requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing span, then metrics and X-Trace-ID
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline, API routes only
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - / (API): /authors, /posts and /login
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.ErrorCodeNotFound, "route not found").WithTraceID(dto.GetTraceID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed,
			dto.NewErrorResponse(dto.ErrorCodeMethodNotAllowed, "method not allowed").WithTraceID(dto.GetTraceID(c)))
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(api, cfg)
}

// setupAPIRoutes registers the blog resources. Nil handlers are skipped.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthorHandler != nil {
		cfg.AuthorHandler.RegisterAuthorRoutes(rg)
	}

	if cfg.PostHandler != nil {
		cfg.PostHandler.RegisterPostRoutes(rg)
	}

	if cfg.LoginHandler != nil {
		cfg.LoginHandler.RegisterLoginRoutes(rg)
	}
}
