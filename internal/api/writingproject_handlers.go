package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListWritingProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.writingProjectService.ListWritingProjects(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, projects, s.logger)
}

func (s *Server) handleGetWritingProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.writingProjectService.GetWritingProject(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, project, s.logger)
}

func (s *Server) handleCreateWritingProject(w http.ResponseWriter, r *http.Request) {
	var req service.CreateWritingProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	project, err := s.writingProjectService.CreateWritingProject(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, project, s.logger)
}

func (s *Server) handleUpdateWritingProject(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateWritingProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	project, err := s.writingProjectService.UpdateWritingProject(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, project, s.logger)
}

func (s *Server) handleDeleteWritingProject(w http.ResponseWriter, r *http.Request) {
	if err := s.writingProjectService.DeleteWritingProject(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleGetNotebook(w http.ResponseWriter, r *http.Request) {
	notebook, err := s.writingProjectService.GetNotebook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notebook, s.logger)
}

func (s *Server) handleSaveNotebook(w http.ResponseWriter, r *http.Request) {
	var req service.SaveContentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	notebook, err := s.writingProjectService.SaveNotebook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notebook, s.logger)
}
