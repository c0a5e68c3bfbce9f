package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c *config.Config, database database.Database, opts ...Option) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	opts = append([]Option{withConfig(c), withStartupTime(startupTime)}, opts...)
	router := newRouter(database, opts...)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180),  // Timeout for reading the entire request
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180), // Timeout for writing the response
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

// Option configures the router built by NewServer
type Option func(*router)

type router struct {
	config      *config.Config
	startupTime time.Time
	issuer      *auth.Issuer
	notifier    services.ContactNotifier
	images      services.ImageStore
}

func withConfig(c *config.Config) Option {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) Option {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// WithIssuer sets the session token issuer. Without it one is built from
// JWT_SECRET and JWT_TTL_HOURS.
func WithIssuer(issuer *auth.Issuer) Option {
	return func(r *router) {
		r.issuer = issuer
	}
}

// WithNotifier sets who is told about new contact messages
func WithNotifier(notifier services.ContactNotifier) Option {
	return func(r *router) {
		r.notifier = notifier
	}
}

// WithImageStore enables POST /api/uploads
func WithImageStore(images services.ImageStore) Option {
	return func(r *router) {
		r.images = images
	}
}

func newRouter(database database.Database, opts ...Option) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}
	if router.issuer == nil {
		ttl := time.Duration(config.GetInt(router.config, "JWT_TTL_HOURS", 24)) * time.Hour
		router.issuer = auth.NewIssuer(config.GetString(router.config, "JWT_SECRET", ""), ttl)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	if config.GetBool(router.config, "LOG_REQUESTS", true) {
		chiRouter.Use(requestLogger(os.Stderr))
	}
	chiRouter.Use(secureHeaders(config.GetString(router.config, "ENVIRONMENT", "production") == "development"))

	handlers := initializeHandlers(database, router.issuer, router.notifier, router.images, router.startupTime)

	enforce := config.GetBool(router.config, "ENFORCE_ADMIN_AUTH", false)
	if !enforce {
		log.Warn().Msg("ENFORCE_ADMIN_AUTH is off, admin routes are open")
	}
	authMiddleware := newAuthMiddleware(router.issuer, enforce)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
