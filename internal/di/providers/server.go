package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/bexshelf/bexshelf-server/internal/api"
	"github.com/bexshelf/bexshelf-server/internal/config"
	"github.com/bexshelf/bexshelf-server/internal/logger"
	"github.com/bexshelf/bexshelf-server/internal/service"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server and starts it in the
// background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	handler := api.NewServer(api.Config{
		Store:           do.MustInvoke[*store.Store](i),
		Auth:            do.MustInvoke[*service.AuthService](i),
		Books:           do.MustInvoke[*service.BookService](i),
		Journals:        do.MustInvoke[*service.JournalService](i),
		Tasks:           do.MustInvoke[*service.TaskService](i),
		Notes:           do.MustInvoke[*service.NoteService](i),
		QuickNotes:      do.MustInvoke[*service.QuickNoteService](i),
		ReadingGoals:    do.MustInvoke[*service.ReadingGoalService](i),
		WritingProjects: do.MustInvoke[*service.WritingProjectService](i),
		VisionBoards:    do.MustInvoke[*service.VisionBoardService](i),
		CORSOrigins:     cfg.Server.CORSOrigins,
		Logger:          log.Logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
