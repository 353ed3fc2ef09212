// Package router assembles the gin engine: middlewares, metrics and the
// route tree.
package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/hearthledger/backend/internal/controllers/healthz"
	v1 "github.com/hearthledger/backend/internal/controllers/v1"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and all middlewares. The returned teardown
// function unregisters the Prometheus metrics so that another router can
// be configured in the same process.
func Config() (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	log.Info().Str("version", version).Msg("Router")

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config allows tests to attach the routes to a fresh
// engine.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	healthz.RegisterRoutes(group.Group("/healthz"), co.DB)

	// API v1 setup
	apiV1 := group.Group("/v1")
	{
		apiV1.GET("", GetV1)
		apiV1.OPTIONS("", OptionsV1)
	}

	co.RegisterMaterializeRoutes(apiV1.Group("/materialize"))
	co.RegisterUserRoutes(apiV1.Group("/users"))
	co.RegisterGroupRoutes(apiV1.Group("/groups"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Application health endpoint
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Endpoint returning Prometheus metrics
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Metrics: "/metrics",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // The running version of the backend
}

// GetVersion returns the API version object
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsVersion returns the allowed HTTP methods
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Materialize string `json:"materialize" example:"https://example.com/api/v1/materialize"` // Endpoint materializing due recurrence rules
	Users       string `json:"users" example:"https://example.com/api/v1/users"`             // Endpoints for user statistics
	Groups      string `json:"groups" example:"https://example.com/api/v1/groups"`           // Endpoints for group statistics
}

// GetV1 returns the link list for v1
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Materialize: "/v1/materialize",
			Users:       "/v1/users",
			Groups:      "/v1/groups",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
