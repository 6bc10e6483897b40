package service

import (
	"context"

	"github.com/alexanderramin/promptcraft/internal/domain"
)

type HistoryService interface {
	// Record stores p and trims history to the configured limit in one
	// transaction.
	Record(ctx context.Context, p *domain.GeneratedPrompt) (*domain.HistoryEntry, error)
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]*domain.HistoryEntry, error)
	Search(ctx context.Context, term string, limit int) ([]*domain.HistoryEntry, error)
	MarkCopied(ctx context.Context, id string) error
	MarkSaved(ctx context.Context, id, path string) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*domain.HistoryStats, error)
}

type ExportService interface {
	// Save writes p to the output directory and returns the file path. A
	// non-empty entryID is marked saved in history.
	Save(ctx context.Context, p *domain.GeneratedPrompt, entryID string) (string, error)
	// Copy puts p on the system clipboard. A non-empty entryID is marked
	// copied in history.
	Copy(ctx context.Context, p *domain.GeneratedPrompt, entryID string) error
}
