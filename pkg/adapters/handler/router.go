package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/adapters/web"
	"github.com/wadjakorntonsri/linkboard/pkg/config"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

// Services bundles the core services the router dispatches to.
type Services struct {
	Links   ports.LinkService
	Domains ports.DomainService
	Auth    ports.AuthService
	Files   ports.FileService
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, svc Services, logger logrus.FieldLogger) http.Handler {
	log := logger.WithField("component", "http")

	// Initialize Handlers
	lh := NewLinkHandler(svc.Links, log)
	dh := NewDomainHandler(svc.Domains, log)
	fh := NewFileHandler(svc.Files, cfg.MaxUploadBytes, log)
	ah := NewAuthHandler(svc.Auth, log)
	pages := web.NewHandler(svc.Links, svc.Domains, logger)

	mw := NewMiddleware(svc.Auth, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)

	// Public Routes
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	pages.Routes(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: splitOrigins(cfg.CORSOrigins),
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}))

		r.Post("/login", ah.Login)
		r.Get("/links", lh.List)
		r.Get("/domains", dh.List)
		r.Get("/download/{filename}", fh.Download)

		// Protected Routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth)

			r.Post("/links", lh.Create)
			r.Put("/links/{id}", lh.Update)
			r.Delete("/links/{id}", lh.Delete)

			r.Post("/domains", dh.Create)
			r.Put("/domains/{id}", dh.Update)
			r.Delete("/domains/{id}", dh.Delete)

			r.Post("/upload", fh.Upload)
		})
	})

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
