package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	notes, err := s.noteService.ListNotes(r.Context(), getUserID(r.Context()), query)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notes, s.logger)
}

func (s *Server) handleListPinnedNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.noteService.ListPinnedNotes(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notes, s.logger)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.noteService.GetNote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, note, s.logger)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	note, err := s.noteService.CreateNote(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, note, s.logger)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	note, err := s.noteService.UpdateNote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, note, s.logger)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.noteService.DeleteNote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
