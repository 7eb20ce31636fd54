// Package mockapi serves an in-memory imitation of the Shippo API for local
// development and end-to-end tests.
//
// Create calls are validated with the same request builders the client
// uses, so a payload the client would send is accepted and anything else is
// rejected with 400 and a {"detail": ...} body.
package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/shippoctl/internal/auth"
	"github.com/danmuck/shippoctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	DefaultAddr     = ":8089"
	DefaultBasePath = "/v1"
	DefaultOwner    = "mock@shippoctl.local"
	DefaultPageSize = 25
	MaxPageSize     = 100

	// timeLayout is UTC with millisecond precision, as the service sends.
	timeLayout = "2006-01-02T15:04:05.000Z"
)

var ErrTokenRequired = errors.New("mockapi: api token required")

type Config struct {
	Addr     string
	BasePath string
	Token    string
	// Validator replaces the single-token check when set.
	Validator   auth.Validator
	Owner       string
	CORSOrigins []string
}

func DefaultConfig() Config {
	return Config{
		Addr:     DefaultAddr,
		BasePath: DefaultBasePath,
		Owner:    DefaultOwner,
	}
}

type Server struct {
	cfg      Config
	router   *gin.Engine
	store    *Store
	auth     auth.Validator
	log      zerolog.Logger
	appeared time.Time

	now   func() time.Time
	newID func() string
}

func New(cfg Config) (*Server, error) {
	validator := cfg.Validator
	if validator == nil {
		if strings.TrimSpace(cfg.Token) == "" {
			return nil, ErrTokenRequired
		}
		validator = auth.StaticToken{Token: strings.TrimSpace(cfg.Token)}
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.Owner == "" {
		cfg.Owner = DefaultOwner
	}

	observability.RegisterMetrics()
	logger := observability.ComponentLogger("mockapi")
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware("mockapi"))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CORSOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		cfg:      cfg,
		router:   r,
		store:    NewStore(),
		auth:     validator,
		log:      logger,
		appeared: time.Now(),
		now:      time.Now,
		newID:    newObjectID,
	}
	s.registerRoutes()
	return s, nil
}

// Handler exposes the router for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) Serve() error {
	s.log.Info().
		Str("addr", s.cfg.Addr).
		Str("base_path", s.cfg.BasePath).
		Msg("mockapi_listening")
	return s.router.Run(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.appeared).String(),
			"service": "shippo-mock",
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group(s.cfg.BasePath)
	api.Use(s.requireToken())
	for _, res := range s.resources() {
		tag := observability.TagResource(res.name)
		api.POST("/"+res.name+"/", tag, s.create(res))
		api.GET("/"+res.name+"/", tag, s.list(res))
		api.GET("/"+res.name+"/:id/", tag, s.retrieve(res))
		api.GET("/"+res.name+"/:id/validate/", tag, s.validate(res))
	}
	api.GET("/tracks/:carrier/:number/", observability.TagResource("tracks"), s.track)
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authenticate(c.Request, s.auth); err != nil {
			s.log.Warn().
				Str("path", c.Request.URL.Path).
				Err(err).
				Msg("mockapi_unauthorized")
			c.Set(observability.DetailKey, "Invalid token.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		c.Next()
	}
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func newObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
