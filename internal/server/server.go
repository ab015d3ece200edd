// Package server serves a storage.Backend over the REST API the REST
// provider consumes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/storage"
)

// Server exposes a backend over HTTP.
type Server struct {
	backend       storage.Backend
	authorization string
	origins       []string
}

// New returns a server for the backend. A non-empty authorization is
// required verbatim in the Authorization header of every request; allowed
// origins default to all.
func New(backend storage.Backend, authorization string, origins []string) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{backend: backend, authorization: authorization, origins: origins}
}

// Handler returns the routes wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.HandleFunc("/points", s.getPoints).Methods(http.MethodGet)
	api.HandleFunc("/points", s.addPoint).Methods(http.MethodPost)
	api.HandleFunc("/points/{id}", s.updatePoint).Methods(http.MethodPut)
	api.HandleFunc("/points/{id}", s.deletePoint).Methods(http.MethodDelete)
	api.HandleFunc("/destinations", s.getDestinations).Methods(http.MethodGet)
	api.HandleFunc("/offers", s.getOffers).Methods(http.MethodGet)
	api.Use(s.authorizationMiddleware)

	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func (s *Server) authorizationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authorization != "" && r.Header.Get("Authorization") != s.authorization {
			respondWithError(w, http.StatusUnauthorized, "missing or wrong authorization")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Str("remote", r.RemoteAddr).Str("method", r.Method).Str("path", r.URL.Path).Dur("took", time.Since(start)).Msg("request")
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic")
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
