package navigation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navboard/internal/domain"
	"github.com/MrSnakeDoc/navboard/internal/logger"
	"github.com/MrSnakeDoc/navboard/internal/metrics"
	"github.com/MrSnakeDoc/navboard/internal/store"
)

// Service applies positional mutations to the navigation document.
//
// Every operation is one full cycle against the store: load, validate the
// positions against what was loaded, edit in memory, write the whole
// document back. The service holds no locks of its own; serialization of
// concurrent cycles is the store's job.
type Service struct {
	store  store.DocumentStore
	logger logger.Logger
}

// NewService creates a navigation service on top of a document store
func NewService(st store.DocumentStore, log logger.Logger) *Service {
	return &Service{
		store:  st,
		logger: log,
	}
}

// Document returns the current document and its revision
func (s *Service) Document(ctx context.Context) (*domain.Document, string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStorageCorruption) {
			s.logger.Error("stored document is corrupt", logger.Error(err))
		}
		return nil, "", fmt.Errorf("failed to load document: %w", err)
	}
	return doc, domain.Revision(doc), nil
}

// Apply runs one mutation and returns the revision of the written document.
//
// When ifMatch is non-empty the mutation only proceeds if the stored
// document still has that revision, so positions taken from an older read
// cannot address the wrong entry.
func (s *Service) Apply(ctx context.Context, ifMatch string, m domain.Mutation) (string, error) {
	op := m.Op()
	start := time.Now()

	doc, err := s.store.Update(ctx, func(doc *domain.Document) error {
		if ifMatch != "" {
			if current := domain.Revision(doc); current != ifMatch {
				return &domain.ConflictError{ExpectedRevision: ifMatch, CurrentRevision: current}
			}
		}
		return m.Apply(doc)
	})

	metrics.MutationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.Mutations.WithLabelValues(op, resultLabel(err)).Inc()

	if err != nil {
		s.logFailure(op, err)
		return "", fmt.Errorf("%s failed: %w", op, err)
	}

	metrics.DocumentCategories.Set(float64(len(doc.Categories)))
	metrics.DocumentSites.Set(float64(doc.SiteCount()))

	rev := domain.Revision(doc)
	s.logger.Info("document updated",
		logger.String("operation", op),
		logger.String("revision", rev),
		logger.Int("categories", len(doc.Categories)),
		logger.Duration("duration", time.Since(start)))

	return rev, nil
}

// AddCategory appends an empty category
func (s *Service) AddCategory(ctx context.Context, name string) error {
	_, err := s.Apply(ctx, "", domain.AddCategory{Name: name})
	return err
}

// AddSite appends a site to a category
func (s *Service) AddSite(ctx context.Context, categoryIndex int, site domain.Site) error {
	_, err := s.Apply(ctx, "", domain.AddSite{CategoryIndex: categoryIndex, Site: site})
	return err
}

// DeleteCategory removes a category and all of its sites
func (s *Service) DeleteCategory(ctx context.Context, categoryIndex int) error {
	_, err := s.Apply(ctx, "", domain.DeleteCategory{CategoryIndex: categoryIndex})
	return err
}

// DeleteSite removes a site from a category
func (s *Service) DeleteSite(ctx context.Context, categoryIndex, siteIndex int) error {
	_, err := s.Apply(ctx, "", domain.DeleteSite{CategoryIndex: categoryIndex, SiteIndex: siteIndex})
	return err
}

// EditSite replaces a site in place
func (s *Service) EditSite(ctx context.Context, categoryIndex, siteIndex int, site domain.Site) error {
	_, err := s.Apply(ctx, "", domain.EditSite{CategoryIndex: categoryIndex, SiteIndex: siteIndex, Site: site})
	return err
}

// MoveSite moves a site to another category and updates it, in one write
func (s *Service) MoveSite(ctx context.Context, categoryIndex, siteIndex, targetCategoryIndex int, site domain.Site) error {
	_, err := s.Apply(ctx, "", domain.MoveSite{
		CategoryIndex:       categoryIndex,
		SiteIndex:           siteIndex,
		TargetCategoryIndex: targetCategoryIndex,
		Site:                site,
	})
	return err
}

func (s *Service) logFailure(op string, err error) {
	switch {
	case errors.Is(err, domain.ErrIndexOutOfRange):
		s.logger.Info("mutation rejected",
			logger.String("operation", op),
			logger.Error(err))
	case errors.Is(err, domain.ErrConcurrentModification):
		s.logger.Warn("mutation rejected, document changed concurrently",
			logger.String("operation", op),
			logger.Error(err))
	case errors.Is(err, domain.ErrStorageCorruption):
		s.logger.Error("stored document is corrupt",
			logger.String("operation", op),
			logger.Error(err))
	default:
		s.logger.Error("mutation failed",
			logger.String("operation", op),
			logger.Error(err))
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, domain.ErrConcurrentModification):
		return "conflict"
	case errors.Is(err, domain.ErrStorageCorruption):
		return "corrupt"
	default:
		return "error"
	}
}
