package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListJournals(w http.ResponseWriter, r *http.Request) {
	journals, err := s.journalService.ListJournals(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, journals, s.logger)
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	journal, err := s.journalService.GetJournal(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, journal, s.logger)
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	var req service.CreateJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	journal, err := s.journalService.CreateJournal(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, journal, s.logger)
}

func (s *Server) handleUpdateJournal(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	journal, err := s.journalService.UpdateJournal(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, journal, s.logger)
}

func (s *Server) handleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	if err := s.journalService.DeleteJournal(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleGetJournalContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.journalService.GetContent(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, content, s.logger)
}

func (s *Server) handleSaveJournalContent(w http.ResponseWriter, r *http.Request) {
	var req service.SaveContentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	content, err := s.journalService.SaveContent(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, content, s.logger)
}
