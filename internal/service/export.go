package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/atotto/clipboard"
	"github.com/gofrs/flock"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("clipboard not available on this system")

const (
	lockFileName  = ".lock"
	lockRetry     = 100 * time.Millisecond
	lockTimeout   = 5 * time.Second
	maxCollisions = 1000
)

// Header renders the metadata block written above a saved or copied prompt.
func Header(p *domain.GeneratedPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", p.CategoryName)
	fmt.Fprintf(&b, "Subcategory: %s\n", p.SubcategoryName)
	fmt.Fprintf(&b, "Generated: %s\n", p.GeneratedAt.Format(prompt.TimestampLayout))
	b.WriteString(strings.Repeat("-", 40))
	b.WriteString("\n\n")
	return b.String()
}

// WithMetadata returns the prompt content prefixed by its Header.
func WithMetadata(p *domain.GeneratedPrompt) string {
	return Header(p) + p.Content + "\n"
}

// Saver writes prompts as text files into one output directory.
type Saver struct {
	dir string
}

func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

func (s *Saver) Dir() string { return s.dir }

// Save writes p under its suggested filename. Allocation of the name is
// serialized across processes by a lock file in the output directory; a name
// already on disk gets a -2, -3, ... suffix.
func (s *Saver) Save(ctx context.Context, p *domain.GeneratedPrompt) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	lock := flock.New(filepath.Join(s.dir, lockFileName))
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetry)
	if err != nil {
		return "", fmt.Errorf("locking output directory: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("locking output directory: timed out")
	}
	defer func() { _ = lock.Unlock() }()

	path, err := s.freePath(p.SuggestedFilename())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(WithMetadata(p)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Saver) freePath(name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxCollisions; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("no free file name for %s after %d attempts", name, maxCollisions)
}

// Clipboard is the write side of a system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard copies through the platform clipboard utility.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Copier puts prompts on a clipboard, optionally with the metadata header.
type Copier struct {
	clip         Clipboard
	withMetadata bool
}

func NewCopier(clip Clipboard, withMetadata bool) *Copier {
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &Copier{clip: clip, withMetadata: withMetadata}
}

func (c *Copier) Copy(p *domain.GeneratedPrompt) error {
	text := p.Content
	if c.withMetadata {
		text = WithMetadata(p)
	}
	if err := c.clip.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

type exportService struct {
	saver    *Saver
	copier   *Copier
	history  HistoryService
	observer UseCaseObserver
}

// NewExportService combines a Saver and a Copier. history may be nil when
// prompts are not being recorded.
func NewExportService(saver *Saver, copier *Copier, history HistoryService, observers ...UseCaseObserver) ExportService {
	return &exportService{
		saver:    saver,
		copier:   copier,
		history:  history,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) Save(ctx context.Context, p *domain.GeneratedPrompt, entryID string) (path string, err error) {
	fields := map[string]any{"category": p.CategoryID, "subcategory": p.SubcategoryID}
	defer observe(ctx, s.observer, "save-prompt", fields)(&err)

	path, err = s.saver.Save(ctx, p)
	if err != nil {
		return "", err
	}
	fields["path"] = path
	if entryID != "" && s.history != nil {
		if err := s.history.MarkSaved(ctx, entryID, path); err != nil {
			return path, fmt.Errorf("saved to %s but updating history failed: %w", path, err)
		}
	}
	return path, nil
}

func (s *exportService) Copy(ctx context.Context, p *domain.GeneratedPrompt, entryID string) (err error) {
	fields := map[string]any{"category": p.CategoryID, "subcategory": p.SubcategoryID}
	defer observe(ctx, s.observer, "copy-prompt", fields)(&err)

	if err := s.copier.Copy(p); err != nil {
		return err
	}
	if entryID != "" && s.history != nil {
		if err := s.history.MarkCopied(ctx, entryID); err != nil {
			return fmt.Errorf("copied but updating history failed: %w", err)
		}
	}
	return nil
}
