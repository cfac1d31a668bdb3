package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/addrconv/internal/address"
	"github.com/addrconv/internal/service"
	"github.com/addrconv/internal/storage"
)

// maxBodyBytes bounds request bodies; addresses are a few hundred bytes.
const maxBodyBytes = 1 << 20

// Config represents the web server configuration (simplified)
type Config struct {
	Features struct {
		StorageEnabled bool `json:"storage_enabled"`
	} `json:"features"`
}

// AddressHandler serves conversion and address storage endpoints.
type AddressHandler struct {
	Service *service.Service
	Config  *Config
	Log     zerolog.Logger
}

// IDResponse is returned by create and update.
type IDResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Convert handles POST /api/convert?to=F[&save=true].
func (h *AddressHandler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	to, err := service.ParseFormat(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	save := false
	if v := query.Get("save"); v != "" {
		if save, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("save must be a boolean"))
			return
		}
	}
	if save && !h.Config.Features.StorageEnabled {
		writeError(w, http.StatusForbidden, errors.New("feature disabled"))
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	result, err := h.Service.Convert(r.Context(), body, to, save)
	if err != nil {
		h.fail(w, err)
		return
	}
	if save {
		w.Header().Set("X-Address-ID", result.ID.String())
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/addresses?from=F.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	from, err := service.ParseFormat(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	id, err := h.Service.Save(r.Context(), body, from)
	if err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Location", "/api/addresses/"+id.String())
	writeJSON(w, http.StatusCreated, IDResponse{ID: id.String()})
}

// Get handles GET /api/addresses/{id}?format=F[&output=xml].
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	to, err := service.ParseFormat(query.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	output := query.Get("output")
	if output != "" && output != "json" && output != "xml" {
		writeError(w, http.StatusBadRequest, errors.New("output must be 'json' or 'xml'"))
		return
	}
	if output == "xml" && to != service.ISO20022 {
		writeError(w, http.StatusBadRequest, errors.New("xml output requires format=iso20022"))
		return
	}

	result, err := h.Service.FetchFormat(r.Context(), id, to)
	if err != nil {
		h.fail(w, err)
		return
	}

	if output == "xml" {
		data, err := result.XML()
		if err != nil {
			h.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Update handles PUT /api/addresses/{id}?from=F.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	from, err := service.ParseFormat(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := h.Service.Update(r.Context(), id, body, from); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}

// Delete handles DELETE /api/addresses/{id}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AddressHandler) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, err)
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, address.ErrMissingField), errors.Is(err, address.ErrInvalidFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid address ID"))
		return "", false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return nil, false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("empty request body"))
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	kind := service.ErrorKind(err)
	switch status {
	case http.StatusBadRequest:
		kind = "bad_request"
	case http.StatusForbidden:
		kind = "forbidden"
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}
