package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bexshelf/bexshelf-server/internal/http/response"
	"github.com/bexshelf/bexshelf-server/internal/service"
)

func (s *Server) handleListVisionBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.visionBoardService.ListVisionBoards(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, boards, s.logger)
}

func (s *Server) handleGetVisionBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.visionBoardService.GetVisionBoard(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, board, s.logger)
}

func (s *Server) handleVisionBoardByMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Invalid year parameter", s.logger)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid month parameter", s.logger)
		return
	}

	board, err := s.visionBoardService.GetVisionBoardByMonth(r.Context(), getUserID(r.Context()), year, month)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, board, s.logger)
}

func (s *Server) handleCreateVisionBoard(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVisionBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	board, err := s.visionBoardService.CreateVisionBoard(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, board, s.logger)
}

func (s *Server) handleUpdateVisionBoard(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateVisionBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	board, err := s.visionBoardService.UpdateVisionBoard(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, board, s.logger)
}

func (s *Server) handleDeleteVisionBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.visionBoardService.DeleteVisionBoard(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleAddVisionImage(w http.ResponseWriter, r *http.Request) {
	fileName, data, err := readUpload(r, "image", "image/")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	image, err := s.visionBoardService.AddImage(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), fileName, data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, image, s.logger)
}

func (s *Server) handleUpdateVisionImage(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateImageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	image, err := s.visionBoardService.UpdateImage(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "imageID"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, image, s.logger)
}

func (s *Server) handleDeleteVisionImage(w http.ResponseWriter, r *http.Request) {
	if err := s.visionBoardService.DeleteImage(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "imageID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleServeVisionImageByID(w http.ResponseWriter, r *http.Request) {
	path, err := s.visionBoardService.ResolveImageByID(r.Context(), getUserID(r.Context()), chi.URLParam(r, "imageID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	http.ServeFile(w, r, path)
}

func (s *Server) handleServeVisionImage(w http.ResponseWriter, r *http.Request) {
	path, err := s.visionBoardService.ResolveImage(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "imageID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	http.ServeFile(w, r, path)
}
