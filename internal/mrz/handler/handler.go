package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veriscan/veriscan-backend/internal/mrz/service"
	"github.com/veriscan/veriscan-backend/pkg/errors"
	"github.com/veriscan/veriscan-backend/pkg/httputil"
	"github.com/veriscan/veriscan-backend/pkg/logger"
)

// Handler handles HTTP requests for MRZ scanning
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler creates a new MRZ handler
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		log:     log,
	}
}

// Routes mounts the MRZ endpoints on a chi router
func (h *Handler) Routes(r chi.Router) {
	r.Post("/scans", h.StartScan)
	r.Get("/scans/{jobId}", h.GetScan)
	r.Post("/parse", h.Parse)
}

// ScanRequest is the body for POST /scans and POST /parse
type ScanRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// StartScan handles POST /scans.
// Accepts an OCR transcript and starts an asynchronous scan job.
// Returns 202 with the job; poll GET /scans/{jobId} for the outcome.
func (h *Handler) StartScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	clientID := httputil.GetCallerID(r.Context())

	job, err := h.service.StartScan(r.Context(), []byte(req.Transcript), clientID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Accepted(w, job)
}

// GetScan handles GET /scans/{jobId}
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")
	if jobID == "" {
		httputil.Error(w, errors.BadRequest("missing jobId parameter"))
		return
	}

	job := h.service.GetJob(jobID)
	if job == nil {
		httputil.Error(w, errors.NotFound("scan job"))
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}

// Parse handles POST /parse.
// Runs the MRZ pipeline synchronously: 200 with the record when the
// transcript yields a valid MRZ, 422 with the diagnostic otherwise.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	record, diag := h.service.Parse(req.Transcript)
	if diag != nil {
		httputil.JSON(w, http.StatusUnprocessableEntity, diag)
		return
	}

	httputil.JSON(w, http.StatusOK, record)
}
