package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/bexshelf/bexshelf-server/internal/config"
	"github.com/bexshelf/bexshelf-server/internal/logger"
	"github.com/bexshelf/bexshelf-server/internal/media/files"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// ProvideStore provides the flat-file record store.
func ProvideStore(i do.Injector) (*store.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.New(cfg.Storage.DataPath, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Info("Record store initialized", "data_path", cfg.Storage.DataPath)

	return st, nil
}

// FileStorages groups the binary upload stores.
type FileStorages struct {
	BookPDFs    *files.Storage
	BoardImages *files.Storage
}

// ProvideFileStorages provides the upload stores for book PDFs and
// vision board images.
func ProvideFileStorages(i do.Injector) (*FileStorages, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	pdfs, err := files.NewStorage(cfg.Storage.UploadPath, "books")
	if err != nil {
		return nil, fmt.Errorf("book PDF storage: %w", err)
	}

	images, err := files.NewStorage(cfg.Storage.UploadPath, "vision-boards")
	if err != nil {
		return nil, fmt.Errorf("vision board image storage: %w", err)
	}

	log.Info("File storages initialized", "upload_path", cfg.Storage.UploadPath)

	return &FileStorages{
		BookPDFs:    pdfs,
		BoardImages: images,
	}, nil
}
