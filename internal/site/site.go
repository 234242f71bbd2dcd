// Package site serves the HTML sitemap, the read-only admin overview and
// the health check.
package site

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	sitemapTmpl = template.Must(template.ParseFS(templateFS, "templates/sitemap.html"))
	adminTmpl   = template.Must(template.ParseFS(templateFS, "templates/admin.html"))
)

// SiteStore is what the admin overview and health check read.
type SiteStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListCharacters(ctx context.Context) ([]models.Character, error)
	ListPlanets(ctx context.Context) ([]models.Planet, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	ListAllFavourites(ctx context.Context) ([]models.Favourite, error)
	Counts(ctx context.Context) (store.Counts, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	store  SiteStore
	routes chi.Routes
}

func NewHandler(s SiteStore) *Handler {
	return &Handler{store: s}
}

// RegisterRoutes mounts the pages on r. The sitemap walks r itself, so it
// lists routes registered after this call too.
func (h *Handler) RegisterRoutes(r chi.Router) {
	h.routes = r
	r.Get("/", httpx.Handle(h.Sitemap))
	r.Get("/admin", httpx.Handle(h.Admin))
	r.Get("/health", h.Health)
}

// Links returns every GET route without path parameters, sorted.
func (h *Handler) Links() ([]string, error) {
	seen := map[string]bool{}
	err := chi.Walk(h.routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(route, "/")
		if method != http.MethodGet || route == "" || strings.Contains(route, "{") {
			return nil
		}
		seen[route] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(seen))
	for l := range seen {
		links = append(links, l)
	}
	sort.Strings(links)
	return links, nil
}

// Sitemap handles GET /
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) error {
	links, err := h.Links()
	if err != nil {
		return err
	}
	return httpx.HTML(w, http.StatusOK, sitemapTmpl, links)
}

type adminPage struct {
	Counts     store.Counts
	Users      []models.User
	Characters []models.Character
	Planets    []models.Planet
	Vehicles   []models.Vehicle
	Favourites []models.Favourite
}

// Admin handles GET /admin/
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	var (
		page adminPage
		err  error
	)
	if page.Counts, err = h.store.Counts(ctx); err != nil {
		return err
	}
	if page.Users, err = h.store.ListUsers(ctx); err != nil {
		return err
	}
	if page.Characters, err = h.store.ListCharacters(ctx); err != nil {
		return err
	}
	if page.Planets, err = h.store.ListPlanets(ctx); err != nil {
		return err
	}
	if page.Vehicles, err = h.store.ListVehicles(ctx); err != nil {
		return err
	}
	if page.Favourites, err = h.store.ListAllFavourites(ctx); err != nil {
		return err
	}
	return httpx.HTML(w, http.StatusOK, adminTmpl, page)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
