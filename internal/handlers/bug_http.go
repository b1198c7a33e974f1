package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"bug-tracker/internal/models"
	"bug-tracker/internal/repository"
	"bug-tracker/internal/service"
	"bug-tracker/internal/utils"
	"bug-tracker/internal/validation"
)

// maxBodyBytes caps request bodies; sanitized text is bounded anyway.
const maxBodyBytes = 1 << 20

// BugHTTP wires HTTP endpoints to the bug service.
type BugHTTP struct {
	bugs *service.BugService
	log  zerolog.Logger
	dev  bool // attach error detail to 500 responses
}

func NewBugHTTP(bugs *service.BugService, log zerolog.Logger, dev bool) *BugHTTP {
	return &BugHTTP{bugs: bugs, log: log, dev: dev}
}

// -----------------------------------------------------------------------------
// GET /api/bugs?status=&priority=&sortBy=
// -----------------------------------------------------------------------------
func (h *BugHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		status := utils.QueryString(qv, "status", "")
		priority := utils.QueryString(qv, "priority", "")
		if err := validation.ValidateListFilter(status, priority); err != nil {
			h.fail(w, r, err)
			return
		}

		res, err := h.bugs.List(r.Context(), repository.BugFilter{
			Status:   models.Status(status),
			Priority: models.Priority(priority),
			Sort:     utils.QueryString(qv, "sortBy", repository.DefaultSort),
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"success": true, "count": res.Count, "data": res.Bugs})
	}
}

// -----------------------------------------------------------------------------
// GET /api/bugs/stats
// -----------------------------------------------------------------------------
func (h *BugHTTP) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := h.bugs.Stats(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"success": true, "data": st})
	}
}

// -----------------------------------------------------------------------------
// GET /api/bugs/{id}
// -----------------------------------------------------------------------------
func (h *BugHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.bugs.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"success": true, "data": b})
	}
}

// -----------------------------------------------------------------------------
// POST /api/bugs
// -----------------------------------------------------------------------------
func (h *BugHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.CreateBugInput
		if !h.decode(w, r, &in) {
			return
		}
		if err := validation.ValidateCreate(in); err != nil {
			h.fail(w, r, err)
			return
		}
		b, err := h.bugs.Create(r.Context(), in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"success": true, "data": b})
	}
}

// -----------------------------------------------------------------------------
// PUT /api/bugs/{id}
// Only the fields present in the body change.
// -----------------------------------------------------------------------------
func (h *BugHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.UpdateBugInput
		if !h.decode(w, r, &in) {
			return
		}
		if err := validation.ValidateUpdate(in); err != nil {
			h.fail(w, r, err)
			return
		}
		b, err := h.bugs.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"success": true, "data": b})
	}
}

// -----------------------------------------------------------------------------
// DELETE /api/bugs/{id}
// -----------------------------------------------------------------------------
func (h *BugHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.bugs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Bug deleted successfully"})
	}
}

func (h *BugHTTP) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// fail maps the error taxonomy onto status codes.
func (h *BugHTTP) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *service.ValidationError
		se *service.StorageError
	)
	switch {
	case errors.As(err, &ve):
		utils.ValidationError(w, ve.Messages)
	case errors.Is(err, service.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Bug not found")
	case errors.As(err, &se):
		h.serverError(w, r, "Database error", err)
	default:
		h.serverError(w, r, "Internal server error", err)
	}
}

func (h *BugHTTP) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error().Err(err).Str("request_id", utils.RequestID(r.Context())).Msg(msg)
	body := map[string]any{"success": false, "message": msg}
	if h.dev {
		body["error"] = err.Error()
	}
	utils.JSON(w, http.StatusInternalServerError, body)
}
