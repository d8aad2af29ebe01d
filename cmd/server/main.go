// Command graphdb-server exposes the embedded graph database over a
// small JSON API: one POST /query handler plus snapshot and
// operability endpoints, mirroring the shape of this lineage's own
// HTTP front end (flag-based port, a CORS allow-list middleware,
// writeJSON/writeError helpers) generalized to the new query engine.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	graphdb "github.com/ritamzico/graphdb"
	"github.com/ritamzico/graphdb/internal/dblog"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

var (
	nodesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphdb_nodes_total",
		Help: "Number of nodes currently in the store.",
	})
	edgesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphdb_edges_total",
		Help: "Number of edges currently in the store.",
	})
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphdb_api_requests_total",
		Help: "Total API requests by route and outcome.",
	}, []string{"route", "outcome"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphdb_api_request_duration_seconds",
		Help:    "API request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(nodesTotal)
	prometheus.MustRegister(edgesTotal)
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument wraps a route handler with request logging and the
// requestsTotal/requestDuration metrics, recording "ok" or "error"
// based on the status code the handler ultimately wrote.
func instrument(route string, h func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h(sw, r)
		dur := time.Since(start)
		requestDuration.WithLabelValues(route).Observe(dur.Seconds())
		outcome := "ok"
		if sw.status >= 400 {
			outcome = "error"
		}
		requestsTotal.WithLabelValues(route, outcome).Inc()
		dblog.WithComponent("server").Debug().
			Str("route", route).
			Int("status", sw.status).
			Dur("duration", dur).
			Msg("handled request")
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type server struct {
	db *graphdb.DB
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (s *server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body queryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Query == "" {
		writeError(w, http.StatusBadRequest, "missing field: query")
		return
	}

	res, err := s.db.QueryContext(r.Context(), body.Query)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out := queryResponse{Columns: res.Columns, Rows: make([][]string, len(res.Records))}
	for i, rec := range res.Records {
		row := make([]string, len(rec.Values))
		for j, b := range rec.Values {
			row[j] = b.String()
		}
		out.Rows[i] = row
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var buf bytes.Buffer
		if err := s.db.SaveText(&buf); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	case http.MethodPost:
		loaded, err := graphdb.LoadText(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid snapshot: %v", err))
			return
		}
		s.db = loaded
		writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// reportGauges keeps the node/edge gauges fresh immediately before
// each scrape, since the store can mutate between scrapes.
func (s *server) reportGauges(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nodesTotal.Set(float64(s.db.Store.NodeCount()))
		edgesTotal.Set(float64(s.db.Store.EdgeCount()))
		next.ServeHTTP(w, r)
	})
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	dbFile := flag.String("db", "", "YAML snapshot file to load on startup")
	flag.Parse()

	dblog.Init(dblog.Config{Level: dblog.InfoLevel})
	log := dblog.WithComponent("server")

	var db *graphdb.DB
	if *dbFile != "" {
		loaded, err := graphdb.LoadTextFile(*dbFile)
		if err != nil {
			log.Warn().Err(err).Str("file", *dbFile).Msg("could not load snapshot, starting empty")
			db = graphdb.New()
		} else {
			db = loaded
		}
	} else {
		db = graphdb.New()
	}

	s := &server{db: db}

	mux := http.NewServeMux()
	mux.HandleFunc("/query", instrument("query", s.handleQuery))
	mux.HandleFunc("/snapshot", instrument("snapshot", s.handleSnapshot))
	mux.HandleFunc("/healthz", instrument("healthz", s.handleHealthz))
	mux.Handle("/metrics", s.reportGauges(promhttp.Handler()))

	addr := fmt.Sprintf(":%d", *port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
