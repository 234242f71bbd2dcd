package favorites

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/starwars-blog-api/internal/models"
	"github.com/ayush/starwars-blog-api/internal/store"
)

func newRouter(s FavouriteStore) http.Handler {
	r := chi.NewRouter()
	NewHandler(s).RegisterRoutes(r)
	return r
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

// failingStore wraps a MemoryStore and fails favourite inserts.
type failingStore struct {
	*store.MemoryStore
	err error
}

func (f *failingStore) CreateFavourite(context.Context, *models.Favourite) (*models.Favourite, error) {
	return nil, f.err
}

func seed(t *testing.T) *store.MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	_, err := s.CreateUser(ctx, &models.User{Name: "Leia", Email: "leia@rebellion.org"})
	require.NoError(t, err)
	_, err = s.CreateVehicle(ctx, &models.Vehicle{Name: "Speeder bike"})
	require.NoError(t, err)
	return s
}

func TestAddVehicle(t *testing.T) {
	h := newRouter(seed(t))

	rec := send(h, http.MethodPost, "/favorite/vehicle/1", `{"user_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t,
		`{"id":1,"character_id":null,"vehicle_id":1,"planet_id":null,"user_id":1}`,
		rec.Body.String())

	rec = send(h, http.MethodDelete, "/favorite/vehicle/1", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdd_RaceWithDeleteIsNotFound(t *testing.T) {
	h := newRouter(&failingStore{MemoryStore: seed(t), err: store.ErrNotFound})

	rec := send(h, http.MethodPost, "/favorite/vehicle/1", `{"user_id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User or Vehicle not found"}`, rec.Body.String())
}

func TestAdd_StoreFailure(t *testing.T) {
	h := newRouter(&failingStore{MemoryStore: seed(t), err: errors.New("disk full")})

	rec := send(h, http.MethodPost, "/favorite/vehicle/1", `{"user_id":1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRemove_WrongKind(t *testing.T) {
	s := seed(t)
	h := newRouter(s)
	require.Equal(t, http.StatusCreated, send(h, http.MethodPost, "/favorite/vehicle/1", `{"user_id":1}`).Code)

	// planet 1 does not match a vehicle favourite with the same id
	rec := send(h, http.MethodDelete, "/favorite/planet/1", `{"user_id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Favorite not found"}`, rec.Body.String())
}

func TestBadBody(t *testing.T) {
	h := newRouter(seed(t))
	rec := send(h, http.MethodPost, "/favorite/vehicle/1", `user_id=1`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
