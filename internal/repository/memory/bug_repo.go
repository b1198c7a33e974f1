package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bug-tracker/internal/models"
	"bug-tracker/internal/repository"
)

// BugRepo keeps bugs in process memory. Used for development and tests.
type BugRepo struct {
	mu   sync.RWMutex
	bugs map[primitive.ObjectID]models.Bug
	now  func() time.Time
}

func NewBugRepo() *BugRepo {
	return &BugRepo{bugs: map[primitive.ObjectID]models.Bug{}, now: time.Now}
}

func (r *BugRepo) Find(ctx context.Context, f repository.BugFilter) ([]models.Bug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]models.Bug, 0, len(r.bugs))
	for _, b := range r.bugs {
		if f.Matches(b) {
			out = append(out, clone(b))
		}
	}
	r.mu.RUnlock()

	repository.SortBugs(out, repository.ParseSort(f.Sort))
	return out, nil
}

func (r *BugRepo) FindByID(ctx context.Context, id string) (*models.Bug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bugs[oid]
	if !ok {
		return nil, nil
	}
	b = clone(b)
	return &b, nil
}

func (r *BugRepo) Insert(ctx context.Context, b *models.Bug) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := r.now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = b.CreatedAt
	if err := b.Validate(); err != nil {
		return err
	}
	b.ID = primitive.NewObjectID()

	r.mu.Lock()
	r.bugs[b.ID] = clone(*b)
	r.mu.Unlock()
	return nil
}

func (r *BugRepo) UpdateByID(ctx context.Context, id string, p models.BugPatch) (*models.Bug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bugs[oid]
	if !ok {
		return nil, nil
	}
	p.Apply(&b, r.now().UTC())
	r.bugs[oid] = b
	out := clone(b)
	return &out, nil
}

func (r *BugRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bugs[oid]; !ok {
		return false, nil
	}
	delete(r.bugs, oid)
	return true, nil
}

func (r *BugRepo) CountBy(ctx context.Context, field string) ([]models.GroupCount, error) {
	if err := repository.CheckGroupField(field); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	r.mu.RLock()
	for _, b := range r.bugs {
		if field == "status" {
			counts[string(b.Status)]++
		} else {
			counts[string(b.Priority)]++
		}
	}
	r.mu.RUnlock()

	out := make([]models.GroupCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, models.GroupCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

func (r *BugRepo) Ping(ctx context.Context) error { return ctx.Err() }

func clone(b models.Bug) models.Bug {
	if b.Tags != nil {
		b.Tags = append([]string{}, b.Tags...)
	}
	return b
}
