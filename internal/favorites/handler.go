package favorites

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

// FavouriteStore defines the persistence the favourite endpoints need.
type FavouriteStore interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetCharacter(ctx context.Context, id int) (*models.Character, error)
	GetPlanet(ctx context.Context, id int) (*models.Planet, error)
	GetVehicle(ctx context.Context, id int) (*models.Vehicle, error)

	ListFavourites(ctx context.Context, userID int) ([]models.Favourite, error)
	CreateFavourite(ctx context.Context, f *models.Favourite) (*models.Favourite, error)
	FindFavourite(ctx context.Context, userID int, target models.Target, targetID int) (*models.Favourite, error)
	DeleteFavourite(ctx context.Context, id int) error
}

var (
	errUserNotFound     = httpx.Notice(http.StatusNotFound, "User not found")
	errFavoriteNotFound = httpx.Notice(http.StatusNotFound, "Favorite not found")
)

// kind describes one favouritable entity and how its existence is checked.
type kind struct {
	path   string // segment under /favorite/
	target models.Target
	label  string
	exists func(ctx context.Context, id int) error
}

type Handler struct {
	store FavouriteStore
	kinds []kind
}

func NewHandler(s FavouriteStore) *Handler {
	h := &Handler{store: s}
	h.kinds = []kind{
		{path: "planet", target: models.TargetPlanet, label: "Planet", exists: func(ctx context.Context, id int) error {
			_, err := s.GetPlanet(ctx, id)
			return err
		}},
		{path: "people", target: models.TargetCharacter, label: "Character", exists: func(ctx context.Context, id int) error {
			_, err := s.GetCharacter(ctx, id)
			return err
		}},
		{path: "vehicle", target: models.TargetVehicle, label: "Vehicle", exists: func(ctx context.Context, id int) error {
			_, err := s.GetVehicle(ctx, id)
			return err
		}},
	}
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/user/{id}/favorites", httpx.Handle(h.List))
	for _, k := range h.kinds {
		r.Post("/favorite/"+k.path+"/{id}", httpx.Handle(h.add(k)))
		r.Delete("/favorite/"+k.path+"/{id}", httpx.Handle(h.remove(k)))
	}
}

// List handles GET /user/{id}/favorites
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	userID, ok := httpx.ID(r)
	if !ok {
		return errUserNotFound
	}
	if _, err := h.store.GetUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errUserNotFound
		}
		return err
	}

	favs, err := h.store.ListFavourites(r.Context(), userID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, favs)
	return nil
}

// add handles POST /favorite/<kind>/{id} with body {"user_id": n}.
func (h *Handler) add(k kind) httpx.HandlerFunc {
	notFound := httpx.Notice(http.StatusNotFound, "User or "+k.label+" not found")

	return func(w http.ResponseWriter, r *http.Request) error {
		var req models.FavouriteRequest
		if err := httpx.Decode(r, &req); err != nil {
			return err
		}
		targetID, ok := httpx.ID(r)
		if !ok {
			return notFound
		}

		ctx := r.Context()
		if _, err := h.store.GetUser(ctx, req.UserID); err != nil {
			return orNotFound(err, notFound)
		}
		if err := k.exists(ctx, targetID); err != nil {
			return orNotFound(err, notFound)
		}

		f, err := h.store.CreateFavourite(ctx, models.NewFavourite(req.UserID, k.target, targetID))
		if err != nil {
			return orNotFound(err, notFound)
		}
		logging.Ctx(ctx).Info().
			Int("user_id", req.UserID).
			Str("target", string(k.target)).
			Int("target_id", targetID).
			Msg("favourite added")
		httpx.WriteJSON(w, http.StatusCreated, f)
		return nil
	}
}

// remove handles DELETE /favorite/<kind>/{id}. Only the oldest matching
// favourite is removed.
func (h *Handler) remove(k kind) httpx.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req models.FavouriteRequest
		if err := httpx.Decode(r, &req); err != nil {
			return err
		}
		targetID, ok := httpx.ID(r)
		if !ok {
			return errFavoriteNotFound
		}

		ctx := r.Context()
		f, err := h.store.FindFavourite(ctx, req.UserID, k.target, targetID)
		if err != nil {
			return orNotFound(err, errFavoriteNotFound)
		}
		if err := h.store.DeleteFavourite(ctx, f.ID); err != nil {
			return orNotFound(err, errFavoriteNotFound)
		}
		httpx.Message(w, "Favorite removed successfully")
		return nil
	}
}

func orNotFound(err error, notFound *httpx.Error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return err
}
