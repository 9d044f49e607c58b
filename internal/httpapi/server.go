package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

const apiVersion = "2.0.0"

// PDFRenderer turns a finished report into a printable document. A nil
// renderer disables the PDF endpoint without affecting JSON analysis.
type PDFRenderer interface {
	Render(ctx context.Context, rep analysis.Report) ([]byte, error)
}

type Server struct {
	engine   *analysis.Engine
	renderer PDFRenderer
	limiter  *rate.Limiter
}

func NewServer(engine *analysis.Engine, renderer PDFRenderer, rps float64, burst int) http.Handler {
	s := &Server{
		engine:   engine,
		renderer: renderer,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", s.handleHealth)
	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/analyze/pdf", s.handleAnalyzePDF)
	mux.HandleFunc("/v1/thresholds", s.handleThresholds)
	return s.withRateLimit(mux)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"version":  apiVersion,
		"language": "Indonesian",
		"endpoints": map[string]string{
			"analyze":     "POST /v1/analyze",
			"analyze_pdf": "POST /v1/analyze/pdf",
			"thresholds":  "GET /v1/thresholds",
			"health":      "GET /v1/health",
		},
	})
}

func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Config())
}

// decodeInput validates as it decodes: a syntactically broken body and a
// semantically invalid one are reported through different error shapes.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (analysis.VehicleInput, bool) {
	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return analysis.VehicleInput{}, false
	}
	in, errs := analysis.Validate(raw)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": errs,
		})
		return analysis.VehicleInput{}, false
	}
	return in, true
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	rep, err := s.engine.Analyze(r.Context(), in)
	if err != nil {
		log.Printf("analyze %s failed: %v", in.UnitName, err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleAnalyzePDF(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.renderer == nil {
		writeError(w, http.StatusServiceUnavailable, "pdf rendering not available")
		return
	}
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	rep, err := s.engine.Analyze(r.Context(), in)
	if err != nil {
		log.Printf("analyze %s failed: %v", in.UnitName, err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	pdf, err := s.renderer.Render(r.Context(), rep)
	if err != nil {
		log.Printf("render pdf for %s failed: %v", in.UnitName, err)
		writeError(w, http.StatusInternalServerError, "pdf rendering failed")
		return
	}
	filename := fmt.Sprintf("analisis-%s-%s.pdf",
		sanitizeFilename(in.UnitName), time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func sanitizeFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "unit"
	}
	return b.String()
}
