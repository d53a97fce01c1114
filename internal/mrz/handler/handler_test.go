package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriscan/veriscan-backend/internal/mrz/domain"
	"github.com/veriscan/veriscan-backend/internal/mrz/handler"
	"github.com/veriscan/veriscan-backend/internal/mrz/service"
	"github.com/veriscan/veriscan-backend/internal/mrz/storage"
	"github.com/veriscan/veriscan-backend/pkg/logger"
)

var passportTranscript = strings.Join([]string{
	"P<D<<MUSTERMANN<<ERIKA<<<<<<<<<<<<<<<<<<<<<<",
	"C01X00T478D<<8510127F3110315<<<<<<<<<<<<<<08",
}, "\n")

func newTestRouter() (*chi.Mux, *service.Service) {
	log := logger.New("test", "test")
	svc := service.NewService(storage.NewJobStore(time.Minute), nil, nil, log, 64<<10)
	h := handler.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api/v1/mrz", h.Routes)
	return r, svc
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParseValidPassport(t *testing.T) {
	router, _ := newTestRouter()

	rec := postJSON(t, router, "/api/v1/mrz/parse", handler.ScanRequest{Transcript: passportTranscript})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    domain.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "MUSTERMANN", resp.Data.LastName)
	assert.Equal(t, "ERIKA", resp.Data.FirstName)
	assert.Equal(t, domain.FormatTD3, resp.Data.Format)
	assert.True(t, resp.Data.Valid)
}

func TestParseDiagnostic(t *testing.T) {
	router, _ := newTestRouter()

	rec := postJSON(t, router, "/api/v1/mrz/parse", handler.ScanRequest{Transcript: "nothing machine readable"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Data domain.Diagnostic `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.CodeNoCandidates, resp.Data.Code)
	assert.NotEmpty(t, resp.Data.Message)
}

func TestParseMissingTranscript(t *testing.T) {
	router, _ := newTestRouter()

	rec := postJSON(t, router, "/api/v1/mrz/parse", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseInvalidJSON(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mrz/parse", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartScanAndPoll(t *testing.T) {
	router, svc := newTestRouter()

	rec := postJSON(t, router, "/api/v1/mrz/scans", handler.ScanRequest{Transcript: passportTranscript})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp struct {
		Data domain.ScanJob `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.JobID)

	require.Eventually(t, func() bool {
		job := svc.GetJob(resp.Data.JobID)
		return job != nil && job.Status == domain.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mrz/scans/"+resp.Data.JobID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)

	var jobResp struct {
		Data domain.ScanJob `json:"data"`
	}
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &jobResp))
	assert.Equal(t, domain.StatusCompleted, jobResp.Data.Status)
	require.NotNil(t, jobResp.Data.Record)
	assert.Equal(t, "C01X00T47", jobResp.Data.Record.DocumentNumber)
}

func TestGetScanNotFound(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mrz/scans/unknown-job", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
