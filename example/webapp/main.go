// Command webapp shows how web route beans registered in a scope are
// discovered and mounted onto a chi router. Routes carry priorities so
// more specific handlers can be mounted ahead of catch-alls.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	inject "github.com/agentgt/avaje-inject"
	"github.com/agentgt/avaje-inject/feeders"
)

// Route is a web endpoint bean. Implementations register their handlers
// on the router passed to Register.
type Route interface {
	Register(r chi.Router)
}

type healthRoute struct{}

func (healthRoute) Register(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
}

type greeter struct {
	greeting string
}

func (g *greeter) greet(name string) string {
	return fmt.Sprintf("%s, %s!", g.greeting, name)
}

// greetingRoute resolves its greeter through the application scope at
// request time rather than holding a direct reference.
type greetingRoute struct{}

func (greetingRoute) Register(r chi.Router) {
	r.Get("/greet/{name}", func(w http.ResponseWriter, req *http.Request) {
		g, err := inject.Get[*greeter](inject.ApplicationScope())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, g.greet(chi.URLParam(req, "name")))
	})
}

type serverConfig struct {
	Addr     string `env:"ADDR"`
	Greeting string `env:"GREETING"`
}

func main() {
	logger := slog.Default()

	cfg := serverConfig{Addr: ":8080", Greeting: "Hello"}
	if err := feeders.NewEnvFeeder("WEBAPP").Feed(&cfg); err != nil {
		logger.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	props, err := feeders.NewEnvFeeder("WEBAPP").FeedProperties()
	if err != nil {
		logger.Error("failed to read environment properties", "error", err)
		os.Exit(1)
	}

	routeType := inject.TypeOf[Route]()
	scope, err := inject.NewBeanScopeBuilder(
		inject.WithLogger(inject.NewSlogLogger(logger)),
		inject.WithProperties(inject.NewMapProperties(props)),
		inject.WithShutdownHook(),
	).
		Provide(healthRoute{}, inject.As(routeType), inject.WithPriority(100)).
		Provide(greetingRoute{}, inject.As(routeType)).
		Provide(&greeter{greeting: cfg.Greeting}).
		Build()
	if err != nil {
		logger.Error("failed to build scope", "error", err)
		os.Exit(1)
	}
	defer scope.Close()

	if err := inject.RegisterApplicationScope(scope); err != nil {
		logger.Error("failed to register application scope", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)

	routes, err := inject.ListByPriority[Route](scope)
	if err != nil {
		logger.Error("failed to order routes", "error", err)
		os.Exit(1)
	}
	for _, route := range routes {
		route.Register(router)
	}

	logger.Info("listening", "addr", cfg.Addr, "routes", len(routes))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
