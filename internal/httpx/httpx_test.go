package httpx

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_RendersError(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		return Notice(http.StatusNotFound, "Favorite not found")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/favorite/planet/1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Favorite not found"}`, rec.Body.String())
}

func TestHandle_HidesInternalErrors(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("connection refused")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/user", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHTML_FailedRenderWritesNothing(t *testing.T) {
	tmpl := template.Must(template.New("page").Parse(`<h1>{{.Title}}</h1><p>{{call .Body}}</p>`))
	data := map[string]any{
		"Title": "Planets",
		"Body":  func() (string, error) { return "", errors.New("boom") },
	}

	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		return HTML(w, http.StatusOK, tmpl, data)
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "<h1>")
}

func TestHTML(t *testing.T) {
	tmpl := template.Must(template.New("page").Parse(`<p>{{.}}</p>`))
	rec := httptest.NewRecorder()

	require.NoError(t, HTML(rec, http.StatusOK, tmpl, "<Hoth>"))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<p>&lt;Hoth&gt;</p>", rec.Body.String())
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Tatooine"}`))
	require.NoError(t, Decode(req, &v))
	assert.Equal(t, "Tatooine", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, Decode(req, &v))

	for _, body := range []string{`{"name":`, `{"name":"Hoth"} garbage`, `{"name":"Hoth"}{}`, `{"name":42}`} {
		req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := Decode(req, &v)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr, body)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status, body)
		assert.Equal(t, "invalid request body", apiErr.Message, body)
	}
}

func TestBind(t *testing.T) {
	type payload struct {
		Name    string `json:"name"    validate:"required"`
		Climate string `json:"climate" validate:"required"`
	}

	tests := []struct {
		body string
		msg  string
	}{
		{`{"name":"Hoth","climate":"frozen"}`, ""},
		{`{"name":"Hoth"}`, "Missing planet data"},
		{`{"name":42,"climate":"frozen"}`, "Missing planet data"},
		{``, "Missing planet data"},
		{`{"name":"Hoth","climate":"frozen"} trailing`, "invalid request body"},
		{`not json`, "invalid request body"},
	}
	for _, tt := range tests {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/planet", strings.NewReader(tt.body))
		err := Bind(req, &p, "Missing planet data")
		if tt.msg == "" {
			assert.NoError(t, err, tt.body)
			continue
		}
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr, tt.body)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status, tt.body)
		assert.Equal(t, tt.msg, apiErr.Message, tt.body)
	}
}

func TestID(t *testing.T) {
	r := chi.NewRouter()
	var got int
	var ok bool
	r.Get("/planet/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, ok = ID(req)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/planet/42", nil))
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/planet/abc", nil))
	assert.False(t, ok)
}
