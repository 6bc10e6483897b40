package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/promptcraft/internal/db"
	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/repository"
	"github.com/google/uuid"
)

// DefaultHistoryLimit is the number of prompts kept when no limit is configured.
const DefaultHistoryLimit = 50

// statsTopN bounds the subcategory leaderboard in Stats.
const statsTopN = 5

type historyService struct {
	history  repository.HistoryRepo
	uow      db.UnitOfWork
	limit    int
	observer UseCaseObserver
	now      func() time.Time
}

// NewHistoryService creates a HistoryService. A non-positive limit means
// DefaultHistoryLimit.
func NewHistoryService(
	history repository.HistoryRepo,
	uow db.UnitOfWork,
	limit int,
	observers ...UseCaseObserver,
) HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &historyService{
		history:  history,
		uow:      uow,
		limit:    limit,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *historyService) Record(ctx context.Context, p *domain.GeneratedPrompt) (entry *domain.HistoryEntry, err error) {
	fields := map[string]any{
		"category":    p.CategoryID,
		"subcategory": p.SubcategoryID,
	}
	defer observe(ctx, s.observer, "record-prompt", fields)(&err)

	entry = domain.NewHistoryEntry(uuid.New().String(), p)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txHistory := repository.NewSQLiteHistoryRepo(tx)
		if err := txHistory.Create(ctx, entry); err != nil {
			return err
		}
		trimmed, err := txHistory.Trim(ctx, s.limit)
		if err != nil {
			return err
		}
		fields["trimmed"] = trimmed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recording prompt: %w", err)
	}
	fields["entry"] = entry.ShortID()
	return entry, nil
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	return s.history.GetByID(ctx, id)
}

func (s *historyService) ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	return s.history.ListRecent(ctx, limit)
}

func (s *historyService) ListByCategory(ctx context.Context, categoryID string, limit int) ([]*domain.HistoryEntry, error) {
	return s.history.ListByCategory(ctx, categoryID, limit)
}

func (s *historyService) Search(ctx context.Context, term string, limit int) ([]*domain.HistoryEntry, error) {
	return s.history.Search(ctx, term, limit)
}

func (s *historyService) MarkCopied(ctx context.Context, id string) error {
	return s.history.MarkCopied(ctx, id, s.now())
}

func (s *historyService) MarkSaved(ctx context.Context, id, path string) error {
	return s.history.MarkSaved(ctx, id, path)
}

// Delete resolves id (which may be a prefix) before deleting.
func (s *historyService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-history", map[string]any{"id": id})(&err)

	entry, err := s.history.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.history.Delete(ctx, entry.ID)
}

func (s *historyService) Clear(ctx context.Context) (n int64, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "clear-history", fields)(&err)

	n, err = s.history.Clear(ctx)
	fields["deleted"] = n
	return n, err
}

func (s *historyService) Stats(ctx context.Context) (*domain.HistoryStats, error) {
	return s.history.Stats(ctx, statsTopN)
}
