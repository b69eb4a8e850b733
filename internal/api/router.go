package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ebanking/bff-gateway/internal/api/handlers"
	"github.com/ebanking/bff-gateway/internal/config"
	"github.com/ebanking/bff-gateway/internal/downstream"
	"github.com/ebanking/bff-gateway/internal/gateway"
	"github.com/ebanking/bff-gateway/internal/guard"
	"github.com/ebanking/bff-gateway/internal/logger"
	"github.com/ebanking/bff-gateway/internal/tracing"
	"github.com/ebanking/bff-gateway/middleware"
)

const maxGraphQLBody = 1 << 20

func NewRouter(cfg *config.Config) (http.Handler, error) {
	client := downstream.NewClient(downstream.ClientConfig{
		ReadTimeout:  cfg.DownstreamReadTimeout,
		WriteTimeout: cfg.DownstreamWriteTimeout,
		ProbeTimeout: cfg.AuthProbeTimeout,
	})
	authClient := downstream.NewAuthClient(cfg.AuthServiceURL, client)
	profileClient := downstream.NewProfileClient(cfg.UserServiceURL, client)

	resolver := gateway.NewResolver(authClient, profileClient)
	schema, err := gateway.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	readiness := handlers.NewReadinessHandler(cfg.DownstreamReadTimeout,
		handlers.NewHTTPReadinessChecker("auth-service", authClient.BaseURL+"/auth/public", client, cfg.AuthProbeTimeout),
		handlers.NewHTTPReadinessChecker("user-service", cfg.UserServiceURL, client, cfg.DownstreamReadTimeout),
	)
	routeAccess := handlers.NewRouteAccessHandler(guard.New(resolver), guard.DefaultRoutes)

	r := chi.NewRouter()

	// Request id and credential come first so the access log can see them.
	r.Use(middleware.RequestID)
	r.Use(middleware.Credential)
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Tracing(tracing.ServiceName))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/healthz", readiness.Healthz)
	r.Get("/api/healthz", readiness.Healthz)
	r.Get("/readyz", readiness.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	graphqlHandler := &relay.Handler{Schema: schema}
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.RequestSize(maxGraphQLBody))
		r.Use(chimiddleware.AllowContentType("application/json"))
		r.Method(http.MethodPost, "/graphql", graphqlHandler)
		r.Method(http.MethodPost, "/api/graphql", graphqlHandler)
	})

	r.Get("/api/route-access", routeAccess.Check)

	logger.Log.Info().
		Str("auth_service", cfg.AuthServiceURL).
		Str("user_service", cfg.UserServiceURL).
		Msg("routes_mounted")

	return r, nil
}
