package providers

import (
	"github.com/samber/do/v2"

	"github.com/bexshelf/bexshelf-server/internal/auth"
	"github.com/bexshelf/bexshelf-server/internal/logger"
	"github.com/bexshelf/bexshelf-server/internal/service"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	st := do.MustInvoke[*store.Store](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(st, tokens, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	st := do.MustInvoke[*store.Store](i)
	storages := do.MustInvoke[*FileStorages](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(st, storages.BookPDFs, log.Logger), nil
}

// ProvideJournalService provides the journal service.
func ProvideJournalService(i do.Injector) (*service.JournalService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewJournalService(st, log.Logger), nil
}

// ProvideTaskService provides the task service.
func ProvideTaskService(i do.Injector) (*service.TaskService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaskService(st, log.Logger), nil
}

// ProvideNoteService provides the note service.
func ProvideNoteService(i do.Injector) (*service.NoteService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNoteService(st, log.Logger), nil
}

// ProvideQuickNoteService provides the quick note service.
func ProvideQuickNoteService(i do.Injector) (*service.QuickNoteService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQuickNoteService(st, log.Logger), nil
}

// ProvideReadingGoalService provides the reading goal service.
func ProvideReadingGoalService(i do.Injector) (*service.ReadingGoalService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReadingGoalService(st, log.Logger), nil
}

// ProvideWritingProjectService provides the writing project service.
func ProvideWritingProjectService(i do.Injector) (*service.WritingProjectService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWritingProjectService(st, log.Logger), nil
}

// ProvideVisionBoardService provides the vision board service.
func ProvideVisionBoardService(i do.Injector) (*service.VisionBoardService, error) {
	st := do.MustInvoke[*store.Store](i)
	storages := do.MustInvoke[*FileStorages](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewVisionBoardService(st, storages.BoardImages, log.Logger), nil
}
