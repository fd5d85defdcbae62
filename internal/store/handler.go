// AngelaMos | 2026
// handler.go

package store

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

// RegisterRoutes wires the public store surface. Listing and detail are open;
// the optional authenticator lets signed-in callers see their own rating in
// listings without making the endpoint private.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth, authenticator func(http.Handler) http.Handler,
) {
	r.Route("/stores", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.ListStores)
		r.Get("/{storeID}", h.GetStore)
	})

	r.Route("/owner/store", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole(middleware.RoleStoreOwner))

		r.Get("/", h.GetOwnerStore)
		r.Put("/", h.UpdateOwnerStore)
	})
}

// RegisterAdminRoutes wires store creation, editing and deletion.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/stores", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.CreateStore)
		r.Put("/{storeID}", h.UpdateStore)
		r.Delete("/{storeID}", h.DeleteStore)
	})
}

// ListStores returns a paginated store list. Authenticated callers get their
// own rating attached to each row.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Params:  core.ParseListParams(r),
		RaterID: middleware.GetUserID(r.Context()),
	}

	listings, total, err := h.service.ListStores(r.Context(), filter)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToStoreListEntries(listings),
		filter.Params.Page,
		filter.Params.PageSize,
		total,
	)
}

func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	store, err := h.service.GetStore(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToStoreResponse(store))
}

// GetOwnerStore returns the authenticated owner's store.
func (h *Handler) GetOwnerStore(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	store, err := h.service.GetOwnerStore(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToStoreResponse(store))
}

// UpdateOwnerStore lets an owner edit their own store without knowing its ID.
func (h *Handler) UpdateOwnerStore(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	store, err := h.service.GetOwnerStore(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.updateStore(w, r, store.ID)
}

// CreateStore creates a store, optionally assigning an owner (admin only).
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	store, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "owner")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "owner must have the store_owner role")
		case errors.Is(err, core.ErrConflict):
			core.Conflict(w, "owner already has a store")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "store email already registered")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToStoreResponse(store))
}

// UpdateStore updates any store by ID (admin only).
func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	h.updateStore(w, r, chi.URLParam(r, "storeID"))
}

func (h *Handler) updateStore(
	w http.ResponseWriter,
	r *http.Request,
	storeID string,
) {
	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	store, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.GetUserRole(r.Context()),
		storeID,
		req,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "store")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "insufficient permissions")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "store email already registered")
		case errors.Is(err, core.ErrNoChanges):
			core.JSONError(w, core.NoChangesError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToStoreResponse(store))
}

// DeleteStore removes a store and its ratings (admin only).
func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	if err := h.service.Delete(r.Context(), storeID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
