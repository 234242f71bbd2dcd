package characters

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

var errNotFound = httpx.NotFound("Character not found")

type CharacterStore interface {
	ListCharacters(ctx context.Context) ([]models.Character, error)
	GetCharacter(ctx context.Context, id int) (*models.Character, error)
	CreateCharacter(ctx context.Context, c *models.Character) (*models.Character, error)
	DeleteCharacter(ctx context.Context, id int) error
}

type Handler struct {
	store CharacterStore
}

func NewHandler(s CharacterStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/character", httpx.Handle(h.List))
	r.Post("/character", httpx.Handle(h.Create))
	r.Get("/character/{id}", httpx.Handle(h.Get))
	r.Delete("/character/{id}", httpx.Handle(h.Delete))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	chars, err := h.store.ListCharacters(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, chars)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	c, err := h.store.GetCharacter(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, c)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateCharacterRequest
	if err := httpx.Bind(r, &req, "Missing character data"); err != nil {
		return err
	}

	c, err := h.store.CreateCharacter(r.Context(), req.Character())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, c)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	err := h.store.DeleteCharacter(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	httpx.Message(w, "Character deleted successfully")
	return nil
}
