// Package api exposes the prediction and ledger operations over JSON HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msituguard/msituguard/internal/engine"
	"github.com/msituguard/msituguard/internal/store"
)

type Server struct {
	store  *store.Store
	engine *engine.Engine
	port   string
}

func NewServer(st *store.Store, eng *engine.Engine, port string) *Server {
	return &Server{
		store:  st,
		engine: eng,
		port:   port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/predict", s.handlePredict)
	mux.HandleFunc("/api/recommend", s.handleRecommend)
	mux.HandleFunc("/api/detect-county", s.handleDetectCounty)
	mux.HandleFunc("/api/county-environment", s.handleCountyEnvironment)
	mux.HandleFunc("/api/verify/tree", s.handleVerifyTree)
	mux.HandleFunc("/api/verify/report", s.handleVerifyReport)
	mux.HandleFunc("/api/marketplace/transact", s.handleTransact)
	mux.HandleFunc("/api/balance", s.handleBalance)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := s.store.MigrationVersion()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"schema_version": version,
		"time":           time.Now().UTC().Format(time.RFC3339),
	})
}
