// Package services – JournalService
//
// This file implements JournalService, the application-level component that
// owns the lifecycle of journal entries. It validates content, runs sentiment
// analysis at save time (and again on every edit), enforces ownership rules,
// and assembles the analysis bundle served by the journal analysis endpoint.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include user identifiers and pagination parameters where applicable.
package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/export"
	"github.com/wellnesshub/go-wellness-backend/internal/search"
	"github.com/wellnesshub/go-wellness-backend/internal/sentiment"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultEntryTitle = "Untitled Entry"

// JournalRepo defines the repository contract required by JournalService.
// Implementations are responsible for persistence of journal entries.
type JournalRepo interface {
	CreateEntry(ctx context.Context, db *gorm.DB, e *domain.JournalEntry) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, db *gorm.DB, userID string) ([]domain.JournalEntry, error)
	ListEntriesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.JournalEntry, error)
	CountEntries(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	GetEntry(ctx context.Context, db *gorm.DB, id, userID string) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, db *gorm.DB, id, userID string, e *domain.JournalEntry) error
	DeleteEntry(ctx context.Context, db *gorm.DB, id, userID string) error
}

// JournalService coordinates entry persistence and sentiment analysis.
type JournalService struct {
	DB       *gorm.DB
	Repo     JournalRepo
	Analyzer *sentiment.Analyzer

	// MaxContentRunes caps stored content by rune length (0 = unlimited).
	MaxContentRunes int

	// Now supplies the entry timestamp; tests may pin it. Nil uses time.Now.
	Now func() time.Time
}

// JournalAnalysis is the bundle served by the analysis endpoint: mood trend,
// templated weekly summary, top recurring keywords, and the writing streak.
type JournalAnalysis struct {
	TotalEntries  int                 `json:"total_entries"`
	Trend         *sentiment.Trend    `json:"trend,omitempty"`
	WeeklySummary string              `json:"weekly_summary"`
	Keywords      []sentiment.Keyword `json:"keywords,omitempty"`
	Streak        int                 `json:"streak"`
}

// Create validates and persists a new entry, analyzing its sentiment first.
// Blank titles fall back to a default; the entry date and time are stamped
// from the service clock, not the client.
func (s *JournalService) Create(ctx context.Context, userID, title, content string) (*domain.JournalEntry, error) {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	title, content, err := s.normalize(title, content)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := s.Analyzer.Analyze(content)
	e := &domain.JournalEntry{
		UserID:       userID,
		Title:        title,
		Content:      content,
		Date:         now.Format("2006-01-02"),
		Time:         now.Format("15:04"),
		Sentiment:    a.Sentiment,
		Score:        a.Score,
		Polarity:     a.Polarity,
		Subjectivity: a.Subjectivity,
	}
	return s.Repo.CreateEntry(ctx, s.DB, e)
}

// Update rewrites an entry's title and content and recomputes its sentiment.
// The entry's original date and time are preserved.
func (s *JournalService) Update(ctx context.Context, userID, id, title, content string) (*domain.JournalEntry, error) {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("entry.id", id),
		),
	)
	defer span.End()

	title, content, err := s.normalize(title, content)
	if err != nil {
		return nil, err
	}

	a := s.Analyzer.Analyze(content)
	upd := &domain.JournalEntry{
		Title:        title,
		Content:      content,
		Sentiment:    a.Sentiment,
		Score:        a.Score,
		Polarity:     a.Polarity,
		Subjectivity: a.Subjectivity,
	}
	if err := s.Repo.UpdateEntry(ctx, s.DB, id, userID, upd); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return s.Repo.GetEntry(ctx, s.DB, id, userID)
}

// Delete removes an entry owned by userID.
func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("entry.id", id),
		),
	)
	defer span.End()

	if err := s.Repo.DeleteEntry(ctx, s.DB, id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// Get fetches one entry owned by userID.
func (s *JournalService) Get(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	e, err := s.Repo.GetEntry(ctx, s.DB, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListPage returns a page of entries for a user (most recent first).
// It applies defaults for invalid page/pageSize and returns total count.
func (s *JournalService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.JournalEntry, int64, error) {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountEntries(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.JournalEntry{}, 0, nil
	}

	items, err := s.Repo.ListEntriesPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Analysis assembles the full analysis bundle over every entry the user has.
// With no entries it returns a zero-count bundle with the no-data summary.
func (s *JournalService) Analysis(ctx context.Context, userID string) (*JournalAnalysis, error) {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "Analysis",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	entries, err := s.Repo.ListEntries(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	sents := make([]sentiment.Entry, len(entries))
	var all strings.Builder
	for i, e := range entries {
		sents[i] = sentiment.Entry{Date: e.Date, Content: e.Content}
		all.WriteString(e.Content)
		all.WriteString(" ")
	}

	out := &JournalAnalysis{
		TotalEntries:  len(entries),
		Trend:         s.Analyzer.MoodTrend(sents),
		WeeklySummary: s.Analyzer.WeeklySummary(sents),
		Streak:        sentiment.Streak(sents),
	}
	if len(entries) > 0 {
		out.Keywords = sentiment.ExtractKeywords(all.String(), 15)
	}
	return out, nil
}

// ExportText renders the user's full journal as a plain-text document,
// oldest entry first.
func (s *JournalService) ExportText(ctx context.Context, userID string) ([]byte, error) {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "ExportText",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	entries, err := s.Repo.ListEntries(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	// ListEntries is newest first; the export reads like a diary.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return export.JournalText(entries), nil
}

// EntryMatch is one search hit: the matched entry plus its similarity score
// and a bounded excerpt of the matched text.
type EntryMatch struct {
	Entry   domain.JournalEntry `json:"entry"`
	Score   float64             `json:"score"`
	Snippet string              `json:"snippet"`
}

// Search ranks the user's entries against a free-text query and returns up to
// limit matches, best first. Entry title and content are both searchable;
// pasted tables in the content are flattened so their cells match too.
func (s *JournalService) Search(ctx context.Context, userID, query string, limit int) ([]EntryMatch, error) {
	tr := otel.Tracer("services/JournalService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if limit <= 0 {
		limit = 10
	}

	entries, err := s.Repo.ListEntries(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []EntryMatch{}, nil
	}

	byID := make(map[string]domain.JournalEntry, len(entries))
	docs := make([]search.Document, 0, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		docs = append(docs, search.Document{
			ID:   e.ID,
			Text: e.Title + " " + search.PrepareContent(e.Content),
		})
	}

	idx := search.NewIndex(docs)
	results := idx.TopK(query, limit)

	out := make([]EntryMatch, 0, len(results))
	for _, r := range results {
		e, ok := byID[r.ID]
		if !ok {
			continue
		}
		out = append(out, EntryMatch{Entry: e, Score: r.Score, Snippet: r.Snippet})
	}
	return out, nil
}

// normalize trims and validates title and content for create/update.
func (s *JournalService) normalize(title, content string) (string, string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return "", "", ErrTooLong
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultEntryTitle
	}
	return title, content, nil
}

func (s *JournalService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
