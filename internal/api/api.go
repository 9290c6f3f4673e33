package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ougirez/fieldecon/internal/api/controller"
	"github.com/ougirez/fieldecon/internal/config"
	"github.com/ougirez/fieldecon/internal/pkg/metrics"
)

// Services are the dependencies behind the HTTP surface.
type Services struct {
	Economics controller.EconomicsService
	Projects  controller.ProjectStore
	Prices    controller.PricesService

	// Health reports readiness of the backing stores. Nil means always ready.
	Health func(ctx context.Context) error
}

type APIService struct {
	router  *echo.Echo
	metrics *metrics.Metrics
	health  func(ctx context.Context) error
}

func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(cfg config.HTTPConfig, m *metrics.Metrics, services Services) *APIService {
	if m == nil {
		m = metrics.New()
	}
	svc := &APIService{
		router:  echo.New(),
		metrics: m,
		health:  services.Health,
	}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.WARN)

	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestID())
	svc.router.Use(svc.RequestContextMiddleware)
	svc.router.Use(svc.MetricsMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	}))
	if cfg.RequestTimeout > 0 {
		svc.router.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: cfg.RequestTimeout,
		}))
	}

	svc.router.GET("/metrics", echo.WrapHandler(m.Handler()))
	svc.router.GET("/healthz", svc.Healthz)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(services.Economics, services.Projects, services.Prices)

	api.POST("/calculate", cntrl.Calculate)

	cases := api.Group("/cases")
	cases.PUT("/:id", cntrl.ImportCase)
	cases.GET("/:id/totals", cntrl.GetCaseTotals)
	cases.POST("/:id/recalculate", cntrl.RecalculateCase)
	cases.GET("/:id/cash-flow", cntrl.GetCaseCashFlow)
	cases.GET("/:id/breakdown", cntrl.GetCaseBreakdown)

	projects := api.Group("/projects")
	projects.POST("/:id/prices/refresh", cntrl.RefreshProjectPrices)

	return svc
}

func (svc *APIService) Healthz(c echo.Context) error {
	if svc.health != nil {
		if err := svc.health(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "unavailable").SetInternal(err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
