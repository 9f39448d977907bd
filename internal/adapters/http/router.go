package httpadapter

import (
	_ "embed"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/risklens/risklens/internal/core/domain"
	"github.com/risklens/risklens/internal/core/ports"
	"github.com/risklens/risklens/internal/infrastructure/auth"
	"github.com/risklens/risklens/internal/observability/metrics"
)

//go:embed web/index.html
var indexHTML []byte

type Router struct {
	analyzer ports.ContractAnalyzer
	usage    ports.UsageReader
	resolver *auth.Resolver
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	analyzer ports.ContractAnalyzer,
	usage ports.UsageReader,
	resolver *auth.Resolver,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		analyzer: analyzer,
		usage:    usage,
		resolver: resolver,
		metrics:  serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", rt.analyzeContract)
	mux.HandleFunc("/api/health", rt.health)
	mux.HandleFunc("/api/usage", rt.usageReport)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/", rt.static)

	handler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-API-Key"},
		MaxAge:         86400,
	})(mux)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) analyzeContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	identity := rt.resolver.Resolve(
		r.Context(),
		r.Header.Get("Authorization"),
		r.Header.Get("X-API-Key"),
		clientIP(r),
	)

	result, err := rt.analyzer.Analyze(r.Context(), domain.AnalysisRequest{
		Text:     req.Text,
		Identity: identity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) usageReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	identity := rt.resolver.Resolve(
		r.Context(),
		r.Header.Get("Authorization"),
		r.Header.Get("X-API-Key"),
		clientIP(r),
	)

	report, err := rt.usage.Usage(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) static(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// clientIP prefers the first X-Forwarded-For hop, then the socket peer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
