package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListQuickNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.quickNoteService.ListQuickNotes(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notes, s.logger)
}

func (s *Server) handleQuickNoteCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.quickNoteService.CountQuickNotes(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]int{"count": count}, s.logger)
}

func (s *Server) handleCreateQuickNote(w http.ResponseWriter, r *http.Request) {
	var req service.CreateQuickNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	note, err := s.quickNoteService.CreateQuickNote(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, note, s.logger)
}

func (s *Server) handleUpdateQuickNote(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateQuickNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	note, err := s.quickNoteService.UpdateQuickNote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, note, s.logger)
}

func (s *Server) handleDeleteQuickNote(w http.ResponseWriter, r *http.Request) {
	if err := s.quickNoteService.DeleteQuickNote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
