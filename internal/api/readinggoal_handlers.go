package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListReadingGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.readingGoalService.ListReadingGoals(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, goals, s.logger)
}

func (s *Server) handleReadingGoalsByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Invalid year parameter", s.logger)
		return
	}

	goals, err := s.readingGoalService.ListReadingGoalsByYear(r.Context(), getUserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, goals, s.logger)
}

func (s *Server) handleActiveReadingGoal(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year parameter", s.logger)
			return
		}
		year = parsed
	}

	goal, err := s.readingGoalService.ActiveGoal(r.Context(), getUserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, goal, s.logger)
}

func (s *Server) handleCreateReadingGoal(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReadingGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	goal, err := s.readingGoalService.CreateReadingGoal(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, goal, s.logger)
}

func (s *Server) handleUpdateReadingGoal(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReadingGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	goal, err := s.readingGoalService.UpdateReadingGoal(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, goal, s.logger)
}

func (s *Server) handleDeleteReadingGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.readingGoalService.DeleteReadingGoal(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
