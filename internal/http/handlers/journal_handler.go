// Journal HTTP handlers.
//
// This file exposes REST endpoints for journal resources:
//   - POST   /journal/entries       (create, sentiment analyzed at save time)
//   - GET    /journal/entries       (list, paginated, ETag support)
//   - PUT    /journal/entries/{id}  (update, sentiment recomputed)
//   - DELETE /journal/entries/{id}  (delete)
//   - GET    /journal/search        (rank entries against a query)
//   - GET    /journal/analysis      (mood trend, keywords, streak, summary)
//   - GET    /journal/export        (plain-text download)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/fitness"
	"github.com/wellnesshub/go-wellness-backend/internal/repo"
	"github.com/wellnesshub/go-wellness-backend/internal/services"
	"github.com/wellnesshub/go-wellness-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// JournalService defines journal entry lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type JournalService interface {
	// Create persists a new entry for userID, analyzing its sentiment.
	Create(ctx context.Context, userID, title, content string) (*domain.JournalEntry, error)
	// Update rewrites an entry and recomputes its sentiment.
	Update(ctx context.Context, userID, id, title, content string) (*domain.JournalEntry, error)
	// Delete removes an entry owned by userID.
	Delete(ctx context.Context, userID, id string) error
	// ListPage returns a page of entries for a user and the total count.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.JournalEntry, int64, error)
	// Analysis assembles the mood trend, weekly summary, keywords, and streak.
	Analysis(ctx context.Context, userID string) (*services.JournalAnalysis, error)
	// ExportText renders the full journal as a plain-text document.
	ExportText(ctx context.Context, userID string) ([]byte, error)
	// Search ranks entries against a free-text query, best first.
	Search(ctx context.Context, userID, query string, limit int) ([]services.EntryMatch, error)
}

// TrackerService defines daily-log and dashboard operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TrackerService interface {
	// Save upserts one day of metrics (last write wins per date).
	Save(ctx context.Context, userID string, in services.DailyLogInput) (*domain.DailyLog, error)
	// Log returns the single log for a date.
	Log(ctx context.Context, userID, date string) (*domain.DailyLog, error)
	// Logs returns every log the user has, oldest first.
	Logs(ctx context.Context, userID string) ([]domain.DailyLog, error)
	// LogsSince returns the logs dated on or after since, oldest first.
	LogsSince(ctx context.Context, userID, since string) ([]domain.DailyLog, error)
	// Dashboard assembles averages, trends, correlations, report, and badges.
	Dashboard(ctx context.Context, userID string) (*services.Dashboard, error)
	// ExportCSV renders the full log history as CSV.
	ExportCSV(ctx context.Context, userID string) ([]byte, error)
}

// PlannerService defines fitness profile and meal-plan operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PlannerService interface {
	// Profile computes the derived fitness profile without persisting.
	Profile(in services.ProfileInput) (fitness.Profile, error)
	// GeneratePlan builds and persists a plan against the profile's goal.
	GeneratePlan(ctx context.Context, userID string, in services.ProfileInput) (*services.PlanResult, error)
	// GetPlan loads and materializes one stored plan.
	GetPlan(ctx context.Context, userID, id string) (*services.PlanResult, error)
	// ListPlans returns the stored plan rows, most recent first.
	ListPlans(ctx context.Context, userID string) ([]domain.MealPlan, error)
	// SwapMeal replaces one slot of one day and persists the plan.
	SwapMeal(ctx context.Context, userID, id string, day int, slot string) (*services.PlanResult, error)
	// DeletePlan removes a stored plan owned by the user.
	DeletePlan(ctx context.Context, userID, id string) error
	// PlanPDF renders one stored plan as a PDF document.
	PlanPDF(ctx context.Context, userID, id string) ([]byte, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for the journal, tracker, and planner.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	journalSvc JournalService
	trackerSvc TrackerService
	plannerSvc PlannerService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(journalSvc JournalService, trackerSvc TrackerService, plannerSvc PlannerService) *Handlers {
	return &Handlers{journalSvc: journalSvc, trackerSvc: trackerSvc, plannerSvc: plannerSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// CreateEntryRequest is the JSON payload for creating a journal entry.
type CreateEntryRequest struct {
	// Title optionally names the entry; a default is used when empty.
	Title string `json:"title" example:"Morning pages"`
	// Content is the entry body; sentiment is derived from it.
	Content string `json:"content" binding:"required" example:"Slept well, feeling optimistic about the week."`
}

// UpdateEntryRequest is the JSON payload for updating a journal entry.
type UpdateEntryRequest struct {
	// Title optionally renames the entry.
	Title string `json:"title" example:"Morning pages"`
	// Content replaces the entry body; sentiment is recomputed.
	Content string `json:"content" binding:"required" example:"On second thought, the day went fine."`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListEntriesResponse wraps a page of journal entries and pagination
// information.
type ListEntriesResponse struct {
	Entries    []domain.JournalEntry `json:"entries"`
	Pagination Pagination            `json:"pagination"`
}

// SearchEntriesResponse wraps ranked search matches.
type SearchEntriesResponse struct {
	Results []services.EntryMatch `json:"results"`
	Total   int                   `json:"total"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// CreateEntry godoc
// @ID          createJournalEntry
// @Summary     Create a journal entry
// @Description Creates an entry for the current user; sentiment is analyzed at save time.
// @Tags        Journal
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CreateEntryRequest  true  "Create entry payload"
//
// @Success     201  {object}  domain.JournalEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /journal/entries [post]
func (h *Handlers) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	e, err := h.journalSvc.Create(c.Request.Context(), userID(c), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, e)
}

// ListEntries godoc
// @ID          listJournalEntries
// @Summary     List journal entries (paginated)
// @Description Returns a page of the user's entries, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Journal
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListEntriesResponse
// @Header      200  {string} ETag           "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /journal/entries [get]
func (h *Handlers) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.journalSvc.(*services.JournalService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.EntriesStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"entries:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.journalSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListEntriesResponse{
		Entries: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// SearchEntries godoc
// @ID          searchJournalEntries
// @Summary     Search journal entries
// @Description Ranks the user's entries against a free-text query and returns the best matches with scores and excerpts.
// @Tags        Journal
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       q          query   string  true  "Search query"            example(morning run)
// @Param       limit      query   int     false "Maximum results"         minimum(1) maximum(50) default(10)
//
// @Success     200  {object} handlers.SearchEntriesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /journal/search [get]
func (h *Handlers) SearchEntries(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "q is required")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	matches, err := h.journalSvc.Search(c.Request.Context(), userID(c), q, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if matches == nil {
		matches = []services.EntryMatch{}
	}
	ok(c, http.StatusOK, SearchEntriesResponse{Results: matches, Total: len(matches)})
}

// UpdateEntry godoc
// @ID          updateJournalEntry
// @Summary     Update a journal entry
// @Description Rewrites an entry owned by the current user; sentiment is recomputed and the original date is kept.
// @Tags        Journal
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Entry ID (UUID)"        format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
// @Param       body       body    handlers.UpdateEntryRequest  true  "Update entry payload"
//
// @Success     200  {object} domain.JournalEntry
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /journal/entries/{id} [put]
func (h *Handlers) UpdateEntry(c *gin.Context) {
	entryID := c.Param("id")
	if _, err := uuid.Parse(entryID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "entry id must be a UUID")
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	e, err := h.journalSvc.Update(c.Request.Context(), userID(c), entryID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntryNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "entry not found")
		case errors.Is(err, services.ErrEmptyContent):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, e)
}

// DeleteEntry godoc
// @ID          deleteJournalEntry
// @Summary     Delete a journal entry
// @Description Deletes an entry owned by the current user.
// @Tags        Journal
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Entry ID (UUID)"        format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /journal/entries/{id} [delete]
func (h *Handlers) DeleteEntry(c *gin.Context) {
	entryID := c.Param("id")
	if _, err := uuid.Parse(entryID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "entry id must be a UUID")
		return
	}

	if err := h.journalSvc.Delete(c.Request.Context(), userID(c), entryID); err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "entry not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// JournalAnalysis godoc
// @ID          journalAnalysis
// @Summary     Analyze the journal
// @Description Returns the mood trend, weekly summary, top keywords, and writing streak over all entries.
// @Tags        Journal
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object} services.JournalAnalysis
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /journal/analysis [get]
func (h *Handlers) JournalAnalysis(c *gin.Context) {
	a, err := h.journalSvc.Analysis(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeAnalysisFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, a)
}

// ExportJournal godoc
// @ID          exportJournal
// @Summary     Export the journal as text
// @Description Downloads every entry as a plain-text document, oldest first.
// @Tags        Journal
// @Produce     plain
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {string} string "Journal document"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /journal/export [get]
func (h *Handlers) ExportJournal(c *gin.Context) {
	data, err := h.journalSvc.ExportText(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="journal_entries.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}
