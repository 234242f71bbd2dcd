package users

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var confirmTmpl = template.Must(template.ParseFS(templateFS, "templates/confirm_delete.html"))

var errNotFound = httpx.NotFound("User not found")

// UserStore defines the persistence the user endpoints need.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// Handler serves /user.
type Handler struct {
	store UserStore
}

func NewHandler(s UserStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/user", httpx.Handle(h.List))
	r.Post("/user", httpx.Handle(h.Create))
	r.Get("/user/{id}", httpx.Handle(h.Get))
	r.Delete("/user/{id}", httpx.Handle(h.Delete))
	r.Get("/user/{id}/delete", httpx.Handle(h.ConfirmDelete))
	r.Post("/user/{id}/delete", httpx.Handle(h.DeleteForm))
}

// List handles GET /user
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, users)
	return nil
}

// Get handles GET /user/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	u, err := h.lookup(r)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, u)
	return nil
}

// Create handles POST /user/
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateUserRequest
	if err := httpx.Bind(r, &req, "Missing user data"); err != nil {
		return err
	}

	u, err := h.store.CreateUser(r.Context(), req.User())
	if err != nil {
		return err
	}
	logging.Ctx(r.Context()).Info().Int("user_id", u.ID).Msg("user created")
	httpx.WriteJSON(w, http.StatusOK, u)
	return nil
}

// Delete handles DELETE /user/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.delete(r); err != nil {
		return err
	}
	httpx.Message(w, "User deleted successfully")
	return nil
}

// ConfirmDelete handles GET /user/{id}/delete with an HTML confirmation form.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) error {
	u, err := h.lookup(r)
	if err != nil {
		return err
	}
	return httpx.HTML(w, http.StatusOK, confirmTmpl, u)
}

// DeleteForm handles POST /user/{id}/delete and redirects to the user list.
func (h *Handler) DeleteForm(w http.ResponseWriter, r *http.Request) error {
	if err := h.delete(r); err != nil {
		return err
	}
	http.Redirect(w, r, "/user", http.StatusFound)
	return nil
}

func (h *Handler) lookup(r *http.Request) (*models.User, error) {
	id, ok := httpx.ID(r)
	if !ok {
		return nil, errNotFound
	}
	u, err := h.store.GetUser(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound
	}
	return u, err
}

func (h *Handler) delete(r *http.Request) error {
	id, ok := httpx.ID(r)
	if !ok {
		return errNotFound
	}
	err := h.store.DeleteUser(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	logging.Ctx(r.Context()).Info().Int("user_id", id).Msg("user deleted")
	return nil
}
