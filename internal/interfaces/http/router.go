package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-PatentClient/internal/interfaces/http/middleware"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.
type RouterConfig struct {
	ApplicationHandler *handlers.ApplicationHandler
	HealthHandler      *handlers.HealthHandler

	Logging     middleware.LoggingConfig
	Logger      logging.Logger
	Collector   prometheus.MetricsCollector
	Metrics     *prometheus.AppMetrics
	MetricsPath string
}

// NewRouter builds the gin engine:
//
//	GET /healthz, /readyz
//	GET <MetricsPath>                      (when a collector is set)
//	GET /api/v1/applications
//	GET /api/v1/applications/:id
//	GET /api/v1/applications/:id/expiration
//	GET /api/v1/fields
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.RequestLogging(logger, cfg.Metrics, cfg.Logging))
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error("panic recovered",
			logging.Any("panic", rec),
			logging.String("path", c.Request.URL.Path),
			logging.String("request_id", middleware.GetRequestID(c)))
		c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal server error",
		})
	}))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}

	if cfg.Collector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Collector.Handler()))
	}

	api := r.Group("/api/v1")
	if cfg.ApplicationHandler != nil {
		cfg.ApplicationHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: string(errors.ErrCodeNotFound), Message: "resource not found"})
	})

	return r
}

//Personal.AI order the ending
