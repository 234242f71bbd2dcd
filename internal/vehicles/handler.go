package vehicles

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

var errNotFound = httpx.NotFound("Vehicle not found")

type VehicleStore interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*models.Vehicle, error)
	CreateVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int) error
}

type Handler struct {
	store VehicleStore
}

func NewHandler(s VehicleStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/vehicle", httpx.Handle(h.List))
	r.Post("/vehicle", httpx.Handle(h.Create))
	r.Get("/vehicle/{id}", httpx.Handle(h.Get))
	r.Delete("/vehicle/{id}", httpx.Handle(h.Delete))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	vehicles, err := h.store.ListVehicles(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, vehicles)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	v, err := h.store.GetVehicle(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, v)
	return nil
}

// Create handles POST /vehicle/. max_speed is optional.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateVehicleRequest
	if err := httpx.Bind(r, &req, "Missing vehicle data"); err != nil {
		return err
	}

	v, err := h.store.CreateVehicle(r.Context(), req.Vehicle())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, v)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	err := h.store.DeleteVehicle(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	httpx.Message(w, "Vehicle deleted successfully")
	return nil
}
