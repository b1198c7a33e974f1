package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"bug-tracker/internal/metrics"
	"bug-tracker/internal/models"
	"bug-tracker/internal/repository"
	"bug-tracker/internal/validation"
)

// BugService runs the record operations. Callers validate the payload with
// the validation package first; the service sanitizes free text, fills
// defaults and classifies storage failures.
type BugService struct {
	bugs    repository.BugRepository
	log     zerolog.Logger
	timeout time.Duration
}

func NewBugService(bugs repository.BugRepository, log zerolog.Logger, timeout time.Duration) *BugService {
	return &BugService{bugs: bugs, log: log, timeout: timeout}
}

// ListResult carries the formatted bugs and their count.
type ListResult struct {
	Count int
	Bugs  []models.BugResponse
}

func (s *BugService) List(ctx context.Context, f repository.BugFilter) (ListResult, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	bugs, err := s.bugs.Find(ctx, f)
	if err != nil {
		return ListResult{}, s.classify("find", err)
	}
	return ListResult{Count: len(bugs), Bugs: models.FormatAll(bugs)}, nil
}

func (s *BugService) Get(ctx context.Context, id string) (models.BugResponse, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	b, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return models.BugResponse{}, s.classify("findById", err)
	}
	if b == nil {
		return models.BugResponse{}, ErrNotFound
	}
	return models.Format(*b), nil
}

// Create persists an already validated payload.
func (s *BugService) Create(ctx context.Context, in models.CreateBugInput) (models.BugResponse, error) {
	b := &models.Bug{
		Title:       validation.Sanitize(in.Title.Value),
		Description: validation.Sanitize(in.Description.Value),
		Reporter:    validation.Sanitize(in.Reporter.Value),
		Status:      models.StatusOpen,
		Priority:    models.PriorityMedium,
		Tags:        []string{},
	}
	if in.Status.Present() {
		b.Status = models.Status(in.Status.Value)
	}
	if in.Priority.Present() {
		b.Priority = models.Priority(in.Priority.Value)
	}
	if in.AssignedTo.Present() {
		b.AssignedTo = validation.Sanitize(in.AssignedTo.Value)
	}
	if in.Tags.Present() && in.Tags.Value != nil {
		b.Tags = in.Tags.Value
	}

	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if err := s.bugs.Insert(ctx, b); err != nil {
		metrics.BugOperation("create", "error")
		return models.BugResponse{}, s.classify("insert", err)
	}
	metrics.BugOperation("create", "ok")
	s.log.Info().Str("bug_id", b.ID.Hex()).Str("priority", string(b.Priority)).Msg("bug created")
	return models.Format(*b), nil
}

// Update applies the fields present in an already validated payload.
func (s *BugService) Update(ctx context.Context, id string, in models.UpdateBugInput) (models.BugResponse, error) {
	p := buildPatch(in)

	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	if p.Empty() {
		b, err := s.bugs.FindByID(ctx, id)
		if err != nil {
			return models.BugResponse{}, s.classify("findById", err)
		}
		if b == nil {
			return models.BugResponse{}, ErrNotFound
		}
		return models.Format(*b), nil
	}

	b, err := s.bugs.UpdateByID(ctx, id, p)
	if err != nil {
		metrics.BugOperation("update", "error")
		return models.BugResponse{}, s.classify("updateById", err)
	}
	if b == nil {
		return models.BugResponse{}, ErrNotFound
	}
	metrics.BugOperation("update", "ok")
	s.log.Info().Str("bug_id", id).Msg("bug updated")
	return models.Format(*b), nil
}

func (s *BugService) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	ok, err := s.bugs.DeleteByID(ctx, id)
	if err != nil {
		metrics.BugOperation("delete", "error")
		return s.classify("deleteById", err)
	}
	if !ok {
		return ErrNotFound
	}
	metrics.BugOperation("delete", "ok")
	s.log.Info().Str("bug_id", id).Msg("bug deleted")
	return nil
}

// Stats counts the whole collection by status and by priority.
func (s *BugService) Stats(ctx context.Context) (models.Stats, error) {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()

	var st models.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.ByStatus, err = s.bugs.CountBy(gctx, "status")
		return err
	})
	g.Go(func() (err error) {
		st.ByPriority, err = s.bugs.CountBy(gctx, "priority")
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Stats{}, s.classify("aggregate", err)
	}
	return st, nil
}

func (s *BugService) Ping(ctx context.Context) error {
	ctx, cancel := s.storageCtx(ctx)
	defer cancel()
	return s.bugs.Ping(ctx)
}

func buildPatch(in models.UpdateBugInput) models.BugPatch {
	var p models.BugPatch
	if in.Title.Present() {
		v := validation.Sanitize(in.Title.Value)
		p.Title = &v
	}
	if in.Description.Present() {
		v := validation.Sanitize(in.Description.Value)
		p.Description = &v
	}
	if in.Status.Present() {
		v := models.Status(in.Status.Value)
		p.Status = &v
	}
	if in.Priority.Present() {
		v := models.Priority(in.Priority.Value)
		p.Priority = &v
	}
	if in.AssignedTo.Set && !in.AssignedTo.Invalid {
		v := ""
		if !in.AssignedTo.Null {
			v = validation.Sanitize(in.AssignedTo.Value)
		}
		p.AssignedTo = &v
	}
	if in.Tags.Set && !in.Tags.Invalid {
		v := in.Tags.Value
		if v == nil {
			v = []string{}
		}
		p.Tags = &v
	}
	return p
}

func (s *BugService) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// classify downgrades schema rejections to validation errors and wraps
// everything else as a storage error.
func (s *BugService) classify(op string, err error) error {
	var se *models.SchemaError
	if errors.As(err, &se) {
		return &ValidationError{Messages: se.Messages}
	}
	s.log.Error().Err(err).Str("op", op).Msg("storage failure")
	return &StorageError{Op: op, Err: err}
}
