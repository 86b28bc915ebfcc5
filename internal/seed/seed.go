package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/logger"
	"github.com/MrSnakeDoc/navboard/internal/sources/homepage"
	"github.com/MrSnakeDoc/navboard/internal/store"
)

// errAlreadyPopulated aborts the seeding update without writing.
var errAlreadyPopulated = errors.New("document already has categories")

// Seeder imports a Homepage file into the store on startup
type Seeder struct {
	store  store.DocumentStore
	path   string
	format string
	logger logger.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	st store.DocumentStore,
	path string,
	format string,
	log logger.Logger,
) *Seeder {
	return &Seeder{
		store:  st,
		path:   path,
		format: format,
		logger: log,
	}
}

// Seed writes the imported document only when the stored document has no
// categories. The check and the write happen in one store update, so a
// document created concurrently is never overwritten.
// It reports whether anything was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	s.logger.Info("seeding navigation document",
		logger.String("file", s.path),
		logger.String("format", s.format))

	imported, err := homepage.Import(s.path, s.format)
	if err != nil {
		return false, fmt.Errorf("failed to import seed file: %w", err)
	}

	_, err = s.store.Update(ctx, func(doc *domain.Document) error {
		if len(doc.Categories) > 0 {
			return errAlreadyPopulated
		}
		doc.Categories = imported.Categories
		return nil
	})
	if errors.Is(err, errAlreadyPopulated) {
		s.logger.Info("document already populated, seed skipped")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to store seed document: %w", err)
	}

	s.logger.Info("seeded navigation document",
		logger.Int("categories", len(imported.Categories)),
		logger.Int("sites", imported.SiteCount()))
	return true, nil
}
