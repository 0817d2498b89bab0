// Command jiten-server exposes the term-bank lookup engine as a JSON REST
// API.
//
// Endpoints:
//
//	GET /api/lookup?q=<text>     grouped per-collection matches
//	GET /api/collections         loaded collection ids and entry count
//	GET /metrics                 Prometheus metrics
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"jiten/config"
	"jiten/dictionary"
	"jiten/logger"
	"jiten/lookup"
	"jiten/model"
	"jiten/render"
	"jiten/tokenize"
)

// ---- JSON response types ------------------------------------------------

type lookupResponse struct {
	Query       string                      `json:"query"`
	Collections []collectionJSON            `json:"collections"`
	Rendered    map[string][]model.Rendered `json:"rendered"`
}

type collectionJSON struct {
	Collection string         `json:"collection"`
	Entries    []*model.Entry `json:"entries"`
}

type collectionsResponse struct {
	Collections []string `json:"collections"`
	EntryCount  int      `json:"entry_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- metrics ------------------------------------------------------------

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jiten_queries_total",
			Help: "Total lookup queries by result type (hit, miss, error).",
		},
		[]string{"result"},
	)
	queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jiten_query_duration_seconds",
			Help:    "Lookup latency in seconds.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal, queryDuration)
}

// ---- handlers -----------------------------------------------------------

func handleLookup(res *lookup.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing 'q' query parameter")
			return
		}

		start := time.Now()
		matches, err := res.Resolve(query)
		queryDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			queriesTotal.WithLabelValues("error").Inc()
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(matches) == 0 {
			queriesTotal.WithLabelValues("miss").Inc()
		} else {
			queriesTotal.WithLabelValues("hit").Inc()
		}

		groups := make([]collectionJSON, 0, len(matches))
		for _, m := range matches {
			groups = append(groups, collectionJSON{Collection: m.Collection, Entries: m.Entries})
		}
		writeJSON(w, http.StatusOK, lookupResponse{
			Query:       query,
			Collections: groups,
			Rendered:    render.Matches(matches),
		})
	}
}

func handleCollections(idx *dictionary.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, collectionsResponse{
			Collections: idx.Collections(),
			EntryCount:  idx.EntryCount(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- main ---------------------------------------------------------------

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	dictDir := flag.String("dicts", "", "override the dictionary collections root")
	addr := flag.String("addr", "", "override the listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	if *dictDir != "" {
		cfg.DictDir = *dictDir
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	idx, err := dictionary.Load(cfg.DictDir)
	if err != nil {
		slog.Error("failed to load dictionaries", "err", err)
		os.Exit(1)
	}
	slog.Info("dictionaries loaded",
		"collections", len(idx.Collections()), "entries", idx.EntryCount())

	tok, err := tokenize.New(cfg.Tokenizer.Dict)
	if err != nil {
		slog.Error("failed to init tokenizer", "err", err)
		os.Exit(1)
	}
	res := lookup.New(idx, tok)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/lookup", handleLookup(res))
	mux.HandleFunc("/api/collections", handleCollections(idx))
	mux.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{AllowedOrigins: cfg.Server.AllowedOrigins})
	handler := c.Handler(mux)

	slog.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
