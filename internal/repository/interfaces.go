package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

type HistoryRepo interface {
	Create(ctx context.Context, e *domain.HistoryEntry) error
	// GetByID accepts a full id or a unique prefix of one.
	GetByID(ctx context.Context, id string) (*domain.HistoryEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]*domain.HistoryEntry, error)
	Search(ctx context.Context, term string, limit int) ([]*domain.HistoryEntry, error)
	MarkCopied(ctx context.Context, id string, at time.Time) error
	MarkSaved(ctx context.Context, id, path string) error
	Delete(ctx context.Context, id string) error
	// Trim deletes all but the newest keep entries and returns how many went.
	Trim(ctx context.Context, keep int) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Stats(ctx context.Context, topN int) (*domain.HistoryStats, error)
}
