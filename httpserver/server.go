package httpserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"movieinfo/errs"
	"movieinfo/movieinfo"
	"movieinfo/pkg/config"
	"movieinfo/pkg/logger"
	"movieinfo/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// RateLimit is the per client request rate; 0 disables limiting
	RateLimit float64

	Logger *zap.SugaredLogger

	MovieInfoService movieinfo.Service

	metrics *metrics
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		RateLimit:    cfg.RateLimit,
		Logger:       logger.NOOPLogger,
		metrics:      newMetrics(),
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.handleError
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()

	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterMovieInfoRoutes(s.Router.Group("/v1"))
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(s.requestLogger())
	s.Router.Use(s.metrics.middleware())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(s.rateLimiterStore()))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

// rateLimiterStore allows at least one request per window so fractional
// rates still admit traffic.
func (s *Server) rateLimiterStore() middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(s.RateLimit),
		Burst: max(1, int(math.Ceil(s.RateLimit))),
	})
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil && !c.Response().Committed {
				status = statusOf(v.Error)
			}
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error.Error())
			}
			s.Logger.Infow("request", fields...)
			return nil
		},
	})
}

// handleError renders err as an APIResponse. Server side failures get a
// generic message and are logged and reported with the request id; the
// original error never reaches the client.
func (s *Server) handleError(err error, c echo.Context) {
	status := statusOf(err)

	if c.Response().Committed {
		s.Logger.Errorw("error after response was committed",
			"error", err.Error(),
			"request_id", requestID(c),
			"route", c.Path(),
		)
		sentry.WithContext(c).Error(err)
		return
	}

	if status >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(),
			"request_id", requestID(c),
			"route", c.Path(),
		)
		sentry.WithContext(c).Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = writeError(c, status, err)
	}
	if err != nil {
		s.Logger.Errorw("write error response", "error", err.Error(), "request_id", requestID(c))
	}
}

// statusOf maps application error codes and echo errors to HTTP status codes.
func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
