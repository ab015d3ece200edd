package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/storage"
)

func (s *Server) getPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.backend.GetPoints(r.Context())
	if err != nil {
		s.respondWithBackendError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, points)
}

func (s *Server) getDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.backend.GetDestinations(r.Context())
	if err != nil {
		s.respondWithBackendError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, destinations)
}

func (s *Server) getOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.backend.GetOffers(r.Context())
	if err != nil {
		s.respondWithBackendError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, offers)
}

func (s *Server) addPoint(w http.ResponseWriter, r *http.Request) {
	point, ok := parsePoint(w, r)
	if !ok {
		return
	}
	added, err := s.backend.AddPoint(r.Context(), point)
	if err != nil {
		s.respondWithBackendError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, added)
}

func (s *Server) updatePoint(w http.ResponseWriter, r *http.Request) {
	point, ok := parsePoint(w, r)
	if !ok {
		return
	}
	id := model.PointID(mux.Vars(r)["id"])
	if point.ID != "" && point.ID != id {
		respondWithError(w, http.StatusBadRequest, "id in body does not match path")
		return
	}
	point.ID = id

	updated, err := s.backend.UpdatePoint(r.Context(), point)
	if err != nil {
		s.respondWithBackendError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePoint(w http.ResponseWriter, r *http.Request) {
	id := model.PointID(mux.Vars(r)["id"])
	if err := s.backend.DeletePoint(r.Context(), id); err != nil {
		s.respondWithBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parsePoint(w http.ResponseWriter, r *http.Request) (model.Point, bool) {
	var point model.Point
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&point); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return model.Point{}, false
	}
	if point.Offers == nil {
		point.Offers = []model.OfferID{}
	}
	if err := point.Validate(); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return model.Point{}, false
	}
	return point, true
}

func (s *Server) respondWithBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Error().Err(err).Msg("backend failure")
	respondWithError(w, http.StatusInternalServerError, "backend failure")
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("could not marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
