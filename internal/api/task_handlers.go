package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	dueDate := r.URL.Query().Get("dueDate")

	tasks, err := s.taskService.ListTasks(r.Context(), getUserID(r.Context()), dueDate)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tasks, s.logger)
}

func (s *Server) handleListTasksByStatus(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskService.ListTasksByStatus(r.Context(), getUserID(r.Context()), chi.URLParam(r, "status"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tasks, s.logger)
}

func (s *Server) handleListTasksByDate(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskService.ListTasks(r.Context(), getUserID(r.Context()), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tasks, s.logger)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskService.GetTask(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, task, s.logger)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	task, err := s.taskService.CreateTask(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, task, s.logger)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	task, err := s.taskService.UpdateTask(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, task, s.logger)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.taskService.DeleteTask(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.taskService.Stats(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, stats, s.logger)
}
