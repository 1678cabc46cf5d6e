// Package api provides the HTTP server and handlers for the bexshelf backend.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bexshelf/bexshelf-server/internal/ratelimit"
	"github.com/bexshelf/bexshelf-server/internal/service"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store                 *store.Store
	authService           *service.AuthService
	bookService           *service.BookService
	journalService        *service.JournalService
	taskService           *service.TaskService
	noteService           *service.NoteService
	quickNoteService      *service.QuickNoteService
	readingGoalService    *service.ReadingGoalService
	writingProjectService *service.WritingProjectService
	visionBoardService    *service.VisionBoardService

	loginLimiter *ratelimit.KeyedRateLimiter
	corsOrigins  []string
	router       *chi.Mux
	logger       *slog.Logger
}

// Config bundles the dependencies NewServer needs.
type Config struct {
	Store           *store.Store
	Auth            *service.AuthService
	Books           *service.BookService
	Journals        *service.JournalService
	Tasks           *service.TaskService
	Notes           *service.NoteService
	QuickNotes      *service.QuickNoteService
	ReadingGoals    *service.ReadingGoalService
	WritingProjects *service.WritingProjectService
	VisionBoards    *service.VisionBoardService
	CORSOrigins     []string
	Logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg Config) *Server {
	s := &Server{
		store:                 cfg.Store,
		authService:           cfg.Auth,
		bookService:           cfg.Books,
		journalService:        cfg.Journals,
		taskService:           cfg.Tasks,
		noteService:           cfg.Notes,
		quickNoteService:      cfg.QuickNotes,
		readingGoalService:    cfg.ReadingGoals,
		writingProjectService: cfg.WritingProjects,
		visionBoardService:    cfg.VisionBoards,
		// Login attempts are limited per client IP: a burst of 5, then
		// one attempt every 6 seconds.
		loginLimiter: ratelimit.New(1.0/6.0, 5),
		corsOrigins:  cfg.CORSOrigins,
		router:       chi.NewRouter(),
		logger:       cfg.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Auth endpoints (public, login is rate limited by IP).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.With(s.rateLimitByIP(s.loginLimiter)).Post("/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.handleLogout)
				r.Get("/verify", s.handleVerify)
			})
		})

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/books", func(r chi.Router) {
				r.Get("/", s.handleListBooks)
				r.Post("/", s.handleCreateBook)
				r.Get("/stats", s.handleBookStats)
				r.Get("/status/{status}", s.handleListBooksByStatus)
				r.Get("/{id}", s.handleGetBook)
				r.Put("/{id}", s.handleUpdateBook)
				r.Delete("/{id}", s.handleDeleteBook)
				r.Post("/{id}/pdf", s.handleUploadBookPDF)
				r.Get("/{id}/download", s.handleDownloadBookPDF)
			})

			r.Route("/journals", func(r chi.Router) {
				r.Get("/", s.handleListJournals)
				r.Post("/", s.handleCreateJournal)
				r.Get("/{id}", s.handleGetJournal)
				r.Put("/{id}", s.handleUpdateJournal)
				r.Delete("/{id}", s.handleDeleteJournal)
				r.Get("/{id}/content", s.handleGetJournalContent)
				r.Put("/{id}/content", s.handleSaveJournalContent)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.handleListTasks)
				r.Post("/", s.handleCreateTask)
				r.Get("/stats", s.handleTaskStats)
				r.Get("/status/{status}", s.handleListTasksByStatus)
				r.Get("/date/{date}", s.handleListTasksByDate)
				r.Get("/{id}", s.handleGetTask)
				r.Put("/{id}", s.handleUpdateTask)
				r.Delete("/{id}", s.handleDeleteTask)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", s.handleListNotes)
				r.Post("/", s.handleCreateNote)
				r.Get("/search", s.handleListNotes)
				r.Get("/pinned", s.handleListPinnedNotes)
				r.Get("/{id}", s.handleGetNote)
				r.Put("/{id}", s.handleUpdateNote)
				r.Delete("/{id}", s.handleDeleteNote)
			})

			r.Route("/quick-notes", func(r chi.Router) {
				r.Get("/", s.handleListQuickNotes)
				r.Post("/", s.handleCreateQuickNote)
				r.Get("/count", s.handleQuickNoteCount)
				r.Put("/{id}", s.handleUpdateQuickNote)
				r.Delete("/{id}", s.handleDeleteQuickNote)
			})

			r.Route("/reading-goals", func(r chi.Router) {
				r.Get("/", s.handleListReadingGoals)
				r.Post("/", s.handleCreateReadingGoal)
				r.Get("/active", s.handleActiveReadingGoal)
				r.Get("/year/{year}", s.handleReadingGoalsByYear)
				r.Put("/{id}", s.handleUpdateReadingGoal)
				r.Delete("/{id}", s.handleDeleteReadingGoal)
			})

			r.Route("/writing-projects", func(r chi.Router) {
				r.Get("/", s.handleListWritingProjects)
				r.Post("/", s.handleCreateWritingProject)
				r.Get("/{id}", s.handleGetWritingProject)
				r.Put("/{id}", s.handleUpdateWritingProject)
				r.Delete("/{id}", s.handleDeleteWritingProject)
				r.Get("/{id}/content", s.handleGetNotebook)
				r.Put("/{id}/content", s.handleSaveNotebook)
			})

			r.Route("/vision-boards", func(r chi.Router) {
				r.Get("/", s.handleListVisionBoards)
				r.Post("/", s.handleCreateVisionBoard)
				r.Get("/year/{year}/month/{month}", s.handleVisionBoardByMonth)
				r.Get("/images/{imageID}", s.handleServeVisionImageByID)
				r.Get("/{id}", s.handleGetVisionBoard)
				r.Put("/{id}", s.handleUpdateVisionBoard)
				r.Delete("/{id}", s.handleDeleteVisionBoard)
				r.Post("/{id}/images", s.handleAddVisionImage)
				r.Put("/{id}/images/{imageID}", s.handleUpdateVisionImage)
				r.Delete("/{id}/images/{imageID}", s.handleDeleteVisionImage)
				r.Get("/{id}/images/{imageID}/file", s.handleServeVisionImage)
			})
		})
	})
}
