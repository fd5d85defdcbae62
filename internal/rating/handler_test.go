// AngelaMos | 2026
// handler_test.go

package rating

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/angelamos/ratehub/internal/middleware"
)

func identityAs(userID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID != "" {
				ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
				ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(userID, role string) *chi.Mux {
	svc := NewService(newFakeRepo(), newFakeStores(
		&StoreInfo{ID: "store-1"},
		ownedStore("store-2", "owner-1"),
	))
	handler := NewHandler(svc)

	router := chi.NewRouter()
	handler.RegisterRoutes(router, identityAs(userID, role))
	return router
}

func TestHandler_SubmitRating_Roles(t *testing.T) {
	submit := func(router *chi.Mux) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(
			"POST",
			"/stores/store-1/ratings",
			strings.NewReader(`{"rating":4,"comment":"solid"}`),
		))
		return w
	}

	t.Run("normal user submits", func(t *testing.T) {
		router := newTestRouter("user-1", middleware.RoleNormalUser)
		assert.Equal(t, http.StatusCreated, submit(router).Code)
	})

	t.Run("store owner cannot submit", func(t *testing.T) {
		router := newTestRouter("owner-2", middleware.RoleStoreOwner)
		assert.Equal(t, http.StatusForbidden, submit(router).Code)
	})

	t.Run("admin cannot submit", func(t *testing.T) {
		router := newTestRouter("admin-1", middleware.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, submit(router).Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		router := newTestRouter("", "")
		assert.Equal(t, http.StatusUnauthorized, submit(router).Code)
	})
}

func TestHandler_UpdateRating_Roles(t *testing.T) {
	update := func(router *chi.Mux) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(
			"PUT",
			"/stores/store-1/ratings",
			strings.NewReader(`{"rating":5}`),
		))
		return w
	}

	t.Run("store owner cannot update", func(t *testing.T) {
		router := newTestRouter("owner-2", middleware.RoleStoreOwner)
		assert.Equal(t, http.StatusForbidden, update(router).Code)
	})

	t.Run("normal user without a rating gets not found", func(t *testing.T) {
		router := newTestRouter("user-1", middleware.RoleNormalUser)
		assert.Equal(t, http.StatusNotFound, update(router).Code)
	})
}
