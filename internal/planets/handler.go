package planets

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

var errNotFound = httpx.NotFound("Planet not found")

// PlanetStore defines the interface for planet persistence.
type PlanetStore interface {
	ListPlanets(ctx context.Context) ([]models.Planet, error)
	GetPlanet(ctx context.Context, id int) (*models.Planet, error)
	CreatePlanet(ctx context.Context, p *models.Planet) (*models.Planet, error)
	DeletePlanet(ctx context.Context, id int) error
}

// Handler serves /planet.
type Handler struct {
	store PlanetStore
}

func NewHandler(s PlanetStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/planet", httpx.Handle(h.List))
	r.Post("/planet", httpx.Handle(h.Create))
	r.Get("/planet/{id}", httpx.Handle(h.Get))
	r.Delete("/planet/{id}", httpx.Handle(h.Delete))
}

// List handles GET /planet
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	planets, err := h.store.ListPlanets(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, planets)
	return nil
}

// Get handles GET /planet/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	p, err := h.store.GetPlanet(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, p)
	return nil
}

// Create handles POST /planet/
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.CreatePlanetRequest
	if err := httpx.Bind(r, &req, "Missing planet data"); err != nil {
		return err
	}

	p, err := h.store.CreatePlanet(r.Context(), req.Planet())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, p)
	return nil
}

// Delete handles DELETE /planet/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	err := h.store.DeletePlanet(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	httpx.Message(w, "Planet deleted successfully")
	return nil
}
