package users

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

// mockUserStore returns err from every call when set.
type mockUserStore struct {
	users   []models.User
	created *models.User
	err     error
}

func (m *mockUserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, m.err
}

func (m *mockUserStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = u
	out := *u
	out.ID = 7
	return &out, nil
}

func (m *mockUserStore) DeleteUser(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	if _, err := m.GetUser(ctx, id); err != nil {
		return err
	}
	return nil
}

func serve(s UserStore, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(s).RegisterRoutes(r)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreate_PassesFieldsToStore(t *testing.T) {
	m := &mockUserStore{}
	rec := serve(m, http.MethodPost, "/user", `{"name":"Padme","email":"padme@naboo.gov"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"name":"Padme","email":"padme@naboo.gov"}`, rec.Body.String())
	require.NotNil(t, m.created)
	assert.Equal(t, "Padme", m.created.Name)
}

func TestCreate_MissingEmailSkipsStore(t *testing.T) {
	m := &mockUserStore{}
	rec := serve(m, http.MethodPost, "/user", `{"name":"Padme"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing user data"}`, rec.Body.String())
	assert.Nil(t, m.created)
}

func TestStoreFailure(t *testing.T) {
	m := &mockUserStore{err: errors.New("connection reset")}

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/user"},
		{http.MethodGet, "/user/1"},
		{http.MethodDelete, "/user/1"},
		{http.MethodPost, "/user/1/delete"},
	} {
		rec := serve(m, tc.method, tc.path, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String(), tc.path)
	}
}

func TestConfirmDelete_EscapesName(t *testing.T) {
	m := &mockUserStore{users: []models.User{{ID: 1, Name: "<script>", Email: "x@y.z"}}}
	rec := serve(m, http.MethodGet, "/user/1/delete", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestDelete(t *testing.T) {
	m := &mockUserStore{users: []models.User{{ID: 1, Name: "Ahsoka", Email: "ahsoka@togruta.org"}}}

	rec := serve(m, http.MethodDelete, "/user/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())

	rec = serve(m, http.MethodDelete, "/user/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}
