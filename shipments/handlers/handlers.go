package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"shipment-service/shipments/models"
)

const maxBodyBytes = 1 << 20

// ShipmentService is the subset of services.ShipmentService the handlers
// call.
type ShipmentService interface {
	List(ctx context.Context, q models.ListQuery) (models.Page, error)
	Get(ctx context.Context, id string) (*models.Shipment, error)
	Create(ctx context.Context, in models.ShipmentInput) (*models.Shipment, error)
	Update(ctx context.Context, id string, in models.ShipmentInput) (*models.Shipment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Handler struct {
	logger  *zap.Logger
	service ShipmentService
}

func NewHandler(logger *zap.Logger, service ShipmentService) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the shipment routes and the ping probe on r.
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ping", h.ping).Methods(http.MethodGet)
	api.HandleFunc("/shipments", h.list).Methods(http.MethodGet)
	api.HandleFunc("/shipments", h.create).Methods(http.MethodPost)
	api.HandleFunc("/shipments/{id}", h.get).Methods(http.MethodGet)
	api.HandleFunc("/shipments/{id}", h.update).Methods(http.MethodPatch)
	api.HandleFunc("/shipments/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := models.ListQuery{
		Status:      params.Get("status"),
		ShipperName: params.Get("shipperName"),
		CarrierName: params.Get("carrierName"),
		SortBy:      params.Get("sortBy"),
		SortOrder:   params.Get("sortOrder"),
	}

	var err error
	if q.Page, err = intParam(params.Get("page"), "page", 0); err != nil {
		h.writeError(w, r, err)
		return
	}
	if q.Size, err = intParam(params.Get("size"), "size", models.DefaultPageSize); err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	shipment, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shipment)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	shipment, err := h.service.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !deleted {
		h.writeError(w, r, models.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeInput(w http.ResponseWriter, r *http.Request) (models.ShipmentInput, error) {
	var in models.ShipmentInput
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, models.NewValidationError("body", "is required")
		}
		return in, models.NewValidationError("body", "is not valid JSON: "+err.Error())
	}
	return in, nil
}

func intParam(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
