package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/sndpbag/Library-Management-API/internal/middleware"
)

func TestEnsureStorage(t *testing.T) {
	t.Run("passes requests through once connected", func(t *testing.T) {
		router := mux.NewRouter()
		router.Use(middleware.EnsureStorage(func() error { return nil }))
		router.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reports storage failure without reaching the handler", func(t *testing.T) {
		reached := false
		router := mux.NewRouter()
		router.Use(middleware.EnsureStorage(func() error { return errors.New("no reachable servers") }))
		router.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) {
			reached = true
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, reached)
		assert.Contains(t, w.Body.String(), "StorageConnectionError")
	})
}
