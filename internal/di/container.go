// Package di provides dependency injection configuration for the bexshelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bexshelf/bexshelf-server/internal/auth"
	"github.com/bexshelf/bexshelf-server/internal/config"
	"github.com/bexshelf/bexshelf-server/internal/di/providers"
	"github.com/bexshelf/bexshelf-server/internal/logger"
	"github.com/bexshelf/bexshelf-server/internal/service"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenService)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideFileStorages)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideJournalService)
	do.Provide(injector, providers.ProvideTaskService)
	do.Provide(injector, providers.ProvideNoteService)
	do.Provide(injector, providers.ProvideQuickNoteService)
	do.Provide(injector, providers.ProvideReadingGoalService)
	do.Provide(injector, providers.ProvideWritingProjectService)
	do.Provide(injector, providers.ProvideVisionBoardService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is
// running. This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*store.Store](injector)
	_ = do.MustInvoke[*providers.FileStorages](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.JournalService](injector)
	_ = do.MustInvoke[*service.TaskService](injector)
	_ = do.MustInvoke[*service.NoteService](injector)
	_ = do.MustInvoke[*service.QuickNoteService](injector)
	_ = do.MustInvoke[*service.ReadingGoalService](injector)
	_ = do.MustInvoke[*service.WritingProjectService](injector)
	_ = do.MustInvoke[*service.VisionBoardService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
