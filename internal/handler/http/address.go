package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbecom/storeapi/internal/service"
	"github.com/sbecom/storeapi/pkg/httputil"
	"github.com/sbecom/storeapi/pkg/middleware"
	"github.com/sbecom/storeapi/pkg/validator"
)

// AddressHandler handles HTTP requests for address endpoints.
type AddressHandler struct {
	svc    *service.AddressService
	logger *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(svc *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{svc: svc, logger: logger}
}

// AddressRequest is the JSON request body for creating or updating an address.
type AddressRequest struct {
	Street       string `json:"street" validate:"required,min=5"`
	BuildingName string `json:"buildingName" validate:"required,min=5"`
	City         string `json:"city" validate:"required,min=4"`
	State        string `json:"state" validate:"required,min=2"`
	Country      string `json:"country" validate:"required,min=2"`
	Pincode      string `json:"pincode" validate:"required,min=6"`
}

func (req *AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Street:       req.Street,
		BuildingName: req.BuildingName,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Pincode:      req.Pincode,
	}
}

// currentUserID resolves the authenticated user's numeric identifier. Writes
// a 401 and returns false when the context carries no usable identity.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := middleware.UserIDFromContext(r.Context())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "missing or invalid user identity",
			},
		})
		return 0, false
	}
	return id, true
}

// Create handles POST /api/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req AddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	address, err := h.svc.Create(r.Context(), userID, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: address})
}

// List handles GET /api/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePaging(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListAll(r.Context(), p.number, p.size, p.sortBy, p.sortOrder)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Get handles GET /api/addresses/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	address, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// ListForCurrentUser handles GET /api/users/addresses
func (h *AddressHandler) ListForCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	addresses, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Update handles PUT /api/addresses/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	address, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// Delete handles DELETE /api/addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	address, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}
