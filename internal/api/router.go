package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/innsight/hotel-admin/docs"
	"github.com/innsight/hotel-admin/internal/api/handler"
	"github.com/innsight/hotel-admin/internal/api/middleware"
	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/content"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/forms"
	"github.com/innsight/hotel-admin/internal/core/ports"
	"github.com/innsight/hotel-admin/internal/core/service"
)

const metricsSubsystem = "hotel_admin"

// Options carries the transport settings taken from configuration.
type Options struct {
	JWTSecret     string
	SessionTTL    time.Duration
	SecureCookies bool
	SignInRate    float64
	SignInBurst   int
	SetupEnabled  bool
	// Registry receives the HTTP metrics. Nil means the default registry,
	// which also holds the business metrics.
	Registry *prometheus.Registry
}

// Dependencies are the wired services the routes dispatch to.
type Dependencies struct {
	Gate     *auth.Gate
	Auth     ports.AuthService
	Setup    handler.SetupChecker
	Forms    *forms.Registry
	Content  *content.Registry
	Versions handler.ListingVersions
	Checks   map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(log zerolog.Logger, opts Options, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(scopedLogger(log))
	e.Use(requestLogger(log))
	registerer, gatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Session(opts.JWTSecret))
	e.Use(middleware.SetupRedirect(opts.SetupEnabled))

	// --- Handlers ---
	contentHandler := handler.NewContentHandler(deps.Content, log.With().Str("component", "content").Logger())
	formHandler := handler.NewFormHandler(deps.Forms)
	setupHandler := handler.NewSetupHandler(deps.Setup, deps.Forms, service.FormSetup)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Gate, opts.SessionTTL, opts.SecureCookies)
	pageHandler := handler.NewPageHandler(deps.Gate, deps.Forms, deps.Setup, deps.Versions, handler.PageConfig{
		UserForms:    []string{service.FormCreateUser, service.FormEditUser},
		SetupForm:    service.FormSetup,
		SetupEnabled: opts.SetupEnabled,
	})
	throttle := credentialLimiter(opts.SignInRate, opts.SignInBurst)

	api := e.Group("/api")

	// --- Content CRUD (gated inside each content handler) ---
	api.GET("/content/:type", contentHandler.List)
	api.POST("/content/:type", contentHandler.Create)
	api.PATCH("/content/:type", contentHandler.Update)
	api.DELETE("/content/:type", contentHandler.Delete)

	// --- Forms ---
	api.GET("/forms/:formId", formHandler.Fields)
	api.POST("/forms/:formId", formHandler.Submit)

	// --- One-time setup ---
	setup := api.Group("/setup")
	setup.GET("/check", setupHandler.Check)
	setup.POST("/validate", setupHandler.Validate, throttle)
	setup.POST("/create-admin", setupHandler.CreateAdmin, throttle)

	// --- Sessions ---
	authGroup := api.Group("/auth")
	authGroup.POST("/signin", authHandler.SignIn, throttle)
	authGroup.POST("/signout", authHandler.SignOut)
	authGroup.GET("/session", authHandler.Session, middleware.RequireAPI(deps.Gate, middleware.AnyRole, "view your session"))

	// --- Pages (bootstrap payloads, Redirect gate mode) ---
	e.GET("/", pageHandler.Home, middleware.RequirePage(deps.Gate, middleware.AnyRole))
	e.GET("/users", pageHandler.Users, middleware.RequirePage(deps.Gate, domain.RoleAdmin))
	e.GET(middleware.SetupPath, pageHandler.Setup)
	e.GET(auth.UnauthorizedPath, pageHandler.Unauthorized)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// scopedLogger stores a request-tagged logger on the request context.
func scopedLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			l := log.With().Str("request_id", id).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))
			return next(c)
		}
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("remote_ip", v.RemoteIP).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// credentialLimiter throttles routes that accept a password or secret, per
// client IP.
func credentialLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 5
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many attempts, try again later"})
		},
	})
}
