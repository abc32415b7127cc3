// Package web renders the public read-only feed.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

var feedTemplate = template.Must(
	template.New("feed.html").
		Funcs(template.FuncMap{"pathEscape": url.PathEscape}).
		ParseFS(templateFS, "templates/feed.html"),
)

type feedPage struct {
	Domain  string
	Domains []domain.Domain
	Links   []domain.Link
}

type Handler struct {
	links   ports.LinkService
	domains ports.DomainService
	log     logrus.FieldLogger
}

func NewHandler(links ports.LinkService, domains ports.DomainService, logger logrus.FieldLogger) *Handler {
	return &Handler{links: links, domains: domains, log: logger.WithField("component", "web")}
}

// Routes mounts the feed pages.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Feed)
	r.Get("/domains/{name}", h.DomainFeed)
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.ListLinks(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, r, feedPage{Links: links})
}

func (h *Handler) DomainFeed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	links, err := h.links.ListLinksByDomain(r.Context(), name)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, r, feedPage{Domain: name, Links: links})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page feedPage) {
	domains, err := h.domains.ListDomains(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	page.Domains = domains

	var buf bytes.Buffer
	if err := feedTemplate.Execute(&buf, page); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.WithError(err).Error("Failed to render feed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
