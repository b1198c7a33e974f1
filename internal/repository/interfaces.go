package repository

import (
	"context"

	"bug-tracker/internal/models"
)

// BugRepository is the storage contract. Lookups that find nothing return
// (nil, nil) or false rather than an error.
type BugRepository interface {
	Find(ctx context.Context, f BugFilter) ([]models.Bug, error)
	FindByID(ctx context.Context, id string) (*models.Bug, error)
	Insert(ctx context.Context, b *models.Bug) error
	UpdateByID(ctx context.Context, id string, p models.BugPatch) (*models.Bug, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	// CountBy groups the whole collection by one field ("status" or "priority").
	CountBy(ctx context.Context, field string) ([]models.GroupCount, error)
	Ping(ctx context.Context) error
}
