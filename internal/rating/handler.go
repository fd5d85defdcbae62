// AngelaMos | 2026
// handler.go

package rating

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/ratehub/internal/core"
	"github.com/angelamos/ratehub/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/stores/{storeID}/ratings", func(r chi.Router) {
		r.Get("/", h.ListStoreRatings)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/me", h.GetMyRating)

			// Only normal users rate stores.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(middleware.RoleNormalUser))

				r.Post("/", h.SubmitRating)
				r.Put("/", h.UpdateRating)
			})
		})
	})

	r.Route("/ratings", func(r chi.Router) {
		r.Use(authenticator)

		r.Delete("/{ratingID}", h.DeleteRating)
	})

	r.With(authenticator).Get("/users/me/ratings", h.ListMyRatings)

	r.Route("/owner/ratings", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole(middleware.RoleStoreOwner))

		r.Get("/", h.ListOwnerRatings)
	})
}

// SubmitRating records the caller's first rating for a store.
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	userID := middleware.GetUserID(r.Context())

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rating, err := h.service.Submit(r.Context(), userID, storeID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "store")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "cannot rate your own store")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "store already rated; update instead")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToRatingResponse(rating))
}

// UpdateRating modifies the caller's existing rating for a store.
func (h *Handler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	userID := middleware.GetUserID(r.Context())

	var req UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rating, err := h.service.Update(r.Context(), userID, storeID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "rating")
		case errors.Is(err, core.ErrNoChanges):
			core.JSONError(w, core.NoChangesError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToRatingResponse(rating))
}

// GetMyRating returns the caller's rating for a store, if any.
func (h *Handler) GetMyRating(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	userID := middleware.GetUserID(r.Context())

	rating, err := h.service.GetMyRating(r.Context(), userID, storeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rating")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRatingResponse(rating))
}

// DeleteRating removes a rating; users delete their own, admins any.
func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	ratingID := chi.URLParam(r, "ratingID")

	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.GetUserRole(r.Context()),
		ratingID,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "rating")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "insufficient permissions")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.NoContent(w)
}

// ListStoreRatings returns a store's ratings with the rater's name attached.
func (h *Handler) ListStoreRatings(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	params := core.ParseListParams(r)

	rows, total, err := h.service.ListStoreRatings(r.Context(), storeID, params)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToStoreRatingResponses(rows),
		params.Page,
		params.PageSize,
		total,
	)
}

// ListMyRatings returns the caller's ratings across all stores.
func (h *Handler) ListMyRatings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	params := core.ParseListParams(r)

	rows, total, err := h.service.ListMyRatings(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToUserRatingResponses(rows),
		params.Page,
		params.PageSize,
		total,
	)
}

// ListOwnerRatings returns the ratings of the caller's own store.
func (h *Handler) ListOwnerRatings(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	params := core.ParseListParams(r)

	rows, total, err := h.service.ListOwnerRatings(r.Context(), ownerID, params)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToStoreRatingResponses(rows),
		params.Page,
		params.PageSize,
		total,
	)
}
