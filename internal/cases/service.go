package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/cache"
	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/JustJay7/nyaya-mitra/internal/metrics"
	"github.com/JustJay7/nyaya-mitra/pkg/logger"
)

// Store is the persistence the service needs.
type Store interface {
	Create(ctx context.Context, title, parties, description string) (*database.Case, error)
	ListAll(ctx context.Context) ([]database.Case, error)
	GetByID(ctx context.Context, id string) (*database.Case, error)
	Update(ctx context.Context, id string, upd database.CaseUpdate) (*database.Case, error)
}

// Generator produces judgment text for a case.
type Generator interface {
	Generate(ctx context.Context, title, parties, description string) (string, error)
}

// Options carries the optional collaborators of a Service.
type Options struct {
	Cache   cache.Cache
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	// Guard restricts generation to cases still in the Submitted state.
	Guard bool
}

// Service implements the case operations and the status state machine.
type Service struct {
	store     Store
	generator Generator
	cache     cache.Cache
	logger    *logger.Logger
	metrics   *metrics.Metrics
	guard     bool
}

// NewService wires a Service. A nil logger discards output.
func NewService(store Store, generator Generator, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		store:     store,
		generator: generator,
		cache:     opts.Cache,
		logger:    log,
		metrics:   opts.Metrics,
		guard:     opts.Guard,
	}
}

// Create stores a new case in the Submitted state.
func (s *Service) Create(ctx context.Context, title, parties, description string) (*database.Case, error) {
	c, err := s.store.Create(ctx, title, parties, description)
	if err != nil {
		return nil, err
	}

	s.remember(c)
	s.metrics.IncrementCasesCreated()
	s.logger.Info("New case submitted", "case_id", c.ID, "title", c.CaseTitle)

	return c, nil
}

// List returns every case, newest first.
func (s *Service) List(ctx context.Context) ([]database.Case, error) {
	return s.store.ListAll(ctx)
}

// Get returns one case, served from the cache when possible.
func (s *Service) Get(ctx context.Context, id string) (*database.Case, error) {
	if s.cache != nil {
		if c, ok := s.cache.Get(id); ok {
			return c, nil
		}
	}

	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.remember(c)
	return c, nil
}

// GenerateJudgment asks the generator for a judgment and records it.
// On any failure after the case is found, the case is moved to Error on a
// best-effort basis and the original failure is returned.
func (s *Service) GenerateJudgment(ctx context.Context, id string) (*database.Case, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.guard && c.Status != database.StatusSubmitted {
		s.logger.Warn("Judgment already recorded", "case_id", c.ID, "status", c.Status.String())
		s.metrics.IncrementJudgmentOutcome("conflict")
		return nil, ErrAlreadyJudged
	}

	s.logger.Info("Generating judgment", "case_id", c.ID, "title", c.CaseTitle)

	start := time.Now()
	text, err := s.generator.Generate(ctx, c.CaseTitle, c.PartiesInvolved, c.CaseDescription)
	s.metrics.ObserveJudgmentDuration(time.Since(start))
	if err != nil {
		genErr := &GenerationError{CaseID: c.ID, Err: err}
		s.fail(ctx, c.ID, genErr)
		return nil, genErr
	}

	complete := database.StatusAnalysisComplete
	upd := database.CaseUpdate{Judgment: &text, Status: &complete}
	if s.guard {
		submitted := database.StatusSubmitted
		upd.ExpectStatus = &submitted
	}

	updated, err := s.store.Update(ctx, c.ID, upd)
	if err != nil {
		if errors.Is(err, database.ErrStatusConflict) {
			// A concurrent request already recorded its result
			s.logger.Warn("Judgment raced with another request", "case_id", c.ID)
			s.metrics.IncrementJudgmentOutcome("conflict")
			return nil, ErrAlreadyJudged
		}
		s.fail(ctx, c.ID, err)
		return nil, fmt.Errorf("failed to save judgment: %w", err)
	}

	s.remember(updated)
	s.metrics.IncrementJudgmentOutcome("complete")
	s.logger.Info("Judgment generated successfully", "case_id", updated.ID, "title", updated.CaseTitle)

	return updated, nil
}

// fail performs the compensating status write. Its own failure is logged and
// never replaces cause.
func (s *Service) fail(ctx context.Context, id string, cause error) {
	s.metrics.IncrementJudgmentOutcome("error")
	s.logger.Error("Error generating judgment", "case_id", id, "error", cause)

	status := database.StatusError
	updated, err := s.store.Update(context.WithoutCancel(ctx), id, database.CaseUpdate{Status: &status})
	if err != nil {
		s.logger.Error("Failed to mark case as errored", "case_id", id, "error", err)
		if s.cache != nil {
			s.cache.Delete(id)
		}
		return
	}

	s.remember(updated)
}

func (s *Service) remember(c *database.Case) {
	if s.cache != nil {
		s.cache.Set(c)
	}
}
