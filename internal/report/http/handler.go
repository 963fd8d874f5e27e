package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/unitecon/unitecon/internal/observability"
	"github.com/unitecon/unitecon/internal/report"
	"github.com/unitecon/unitecon/internal/view"
)

// maxConfigBytes bounds the accepted snapshot size on every entry point.
const maxConfigBytes = 1 << 20

// Handler wires the projection endpoints: the web form, the JSON API, and
// the CSV export.
type Handler struct {
	logger        *slog.Logger
	service       *report.Service
	templates     *view.Engine
	metrics       *observability.Metrics
	defaultConfig string
	rateLimit     func(http.Handler) http.Handler
}

// NewHandler constructs the projection handler.
func NewHandler(logger *slog.Logger, service *report.Service, templates *view.Engine, metrics *observability.Metrics, defaultConfig []byte) (*Handler, error) {
	if templates == nil {
		return nil, fmt.Errorf("report handler: template engine required")
	}
	if service == nil {
		return nil, fmt.Errorf("report handler: service required")
	}
	limiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
	return &Handler{
		logger:        logger,
		service:       service,
		templates:     templates,
		metrics:       metrics,
		defaultConfig: strings.TrimSpace(string(defaultConfig)),
		rateLimit:     limiter,
	}, nil
}

// MountRoutes registers the projection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.HandleHome)
	r.Post("/", h.HandleCompute)
	r.Post("/api/v1/report", h.HandleAPIReport)
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Post("/report/export.csv", h.HandleExportCSV)
	})
}

// HandleHome renders the form page pre-filled with the example snapshot.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, HomeViewModel{ConfigJSON: h.defaultConfig})
}

// HandleCompute reads the submitted snapshot and renders the report page.
// Parse and validation failures come back on the form, never as a 500.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	configJSON := r.PostFormValue("config_json")
	if len(configJSON) > maxConfigBytes {
		h.observe("web", "error", start)
		h.renderHome(w, r, HomeViewModel{ConfigJSON: h.defaultConfig, Error: "configuration too large"})
		return
	}

	summary, err := h.buildShared(r.Context(), []byte(configJSON))
	if err != nil {
		h.observe("web", "error", start)
		h.renderHome(w, r, HomeViewModel{ConfigJSON: configJSON, Error: err.Error()})
		return
	}
	h.observe("web", "ok", start)

	resultJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		h.logger.Error("marshal summary", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	vm := NewReportViewModel(summary, configJSON, string(resultJSON))
	data := view.TemplateData{
		Title:       "Projection report",
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/report.html", data); err != nil {
		h.logger.Error("render report", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// HandleAPIReport computes a summary for a JSON snapshot in the request
// body and responds with the summary JSON.
func (h *Handler) HandleAPIReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxConfigBytes))
	if err != nil {
		h.observe("api", "error", start)
		h.writeError(w, http.StatusBadRequest, "read request body")
		return
	}

	reportID := uuid.NewString()
	summary, err := h.buildShared(r.Context(), raw)
	if err != nil {
		h.observe("api", "error", start)
		h.logger.Warn("api report rejected", slog.String("report_id", reportID), slog.Any("error", err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.observe("api", "ok", start)
	h.logger.Info("api report built", slog.String("report_id", reportID), slog.Duration("elapsed", time.Since(start)))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Report-ID", reportID)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.logger.Error("encode summary", slog.Any("error", err))
	}
}

// HandleExportCSV streams the projection as CSV for the submitted
// snapshot.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	configJSON := r.PostFormValue("config_json")
	if len(configJSON) > maxConfigBytes {
		h.observe("web", "error", start)
		h.writeError(w, http.StatusBadRequest, "configuration too large")
		return
	}

	summary, err := h.buildShared(r.Context(), []byte(configJSON))
	if err != nil {
		h.observe("web", "error", start)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.observe("web", "ok", start)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="projection.csv"`)
	if err := writeSummaryCSV(w, summary); err != nil {
		h.logger.Error("stream projection csv", slog.Any("error", err))
	}
}

// buildShared runs the service build behind a singleflight keyed by the
// raw snapshot digest, so a burst of identical submissions computes once.
func (h *Handler) buildShared(ctx context.Context, raw []byte) (report.Summary, error) {
	digest := sha256.Sum256(raw)
	key := hex.EncodeToString(digest[:])
	result, err, _ := singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
		return h.service.BuildFromJSON(ctx, raw)
	})
	if err != nil {
		return report.Summary{}, err
	}
	summary, ok := result.(report.Summary)
	if !ok {
		return report.Summary{}, fmt.Errorf("report handler: unexpected build result type %T", result)
	}
	return summary, nil
}

func (h *Handler) renderHome(w http.ResponseWriter, r *http.Request, vm HomeViewModel) {
	data := view.TemplateData{
		Title:       "Unit economics projection",
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/home.html", data); err != nil {
		h.logger.Error("render home", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *Handler) observe(source, outcome string, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.ObserveReport(source, outcome, time.Since(start))
}
