// Tracker HTTP handlers.
//
// This file exposes REST endpoints for the self-tracking dashboard:
//   - PUT  /dashboard/logs        (upsert one day of metrics)
//   - GET  /dashboard/logs        (history, ETag support, optional ?since=)
//   - GET  /dashboard/logs/{date} (single day)
//   - GET  /dashboard             (averages, trends, insights, report, badges)
//   - GET  /dashboard/export.csv  (CSV download)
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/repo"
	"github.com/wellnesshub/go-wellness-backend/internal/services"
)

//
// DTOs
//

// DailyLogRequest is the JSON payload for saving one day of metrics.
// Saving the same date twice overwrites the earlier values.
type DailyLogRequest struct {
	// Date of the log in YYYY-MM-DD form.
	Date string `json:"date" binding:"required" example:"2024-03-15"`
	// SleepHours slept that night (0–24).
	SleepHours float64 `json:"sleep_hours" example:"7.5"`
	// MoodRating on a 1–10 scale.
	MoodRating float64 `json:"mood_rating" binding:"required" example:"8"`
	// StudyHours spent studying (0–24).
	StudyHours float64 `json:"study_hours" example:"2"`
	// WaterIntake in glasses.
	WaterIntake float64 `json:"water_intake" example:"6"`
	// ExerciseMinutes of activity.
	ExerciseMinutes float64 `json:"exercise_minutes" example:"30"`
	// ProductivityScore on a 0–100 scale.
	ProductivityScore float64 `json:"productivity_score" example:"80"`
}

// ListLogsResponse wraps the user's full log history, oldest first.
type ListLogsResponse struct {
	Logs  []domain.DailyLog `json:"logs"`
	Total int               `json:"total"`
}

//
// Handlers
//

// SaveDailyLog godoc
// @ID          saveDailyLog
// @Summary     Save a daily log
// @Description Upserts one day of metrics for the current user; re-saving a date overwrites it.
// @Tags        Dashboard
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.DailyLogRequest  true  "Daily metrics payload"
//
// @Success     200  {object}  domain.DailyLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/logs [put]
func (h *Handlers) SaveDailyLog(c *gin.Context) {
	var req DailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	l, err := h.trackerSvc.Save(c.Request.Context(), userID(c), services.DailyLogInput{
		Date:              req.Date,
		SleepHours:        req.SleepHours,
		MoodRating:        req.MoodRating,
		StudyHours:        req.StudyHours,
		WaterIntake:       req.WaterIntake,
		ExerciseMinutes:   req.ExerciseMinutes,
		ProductivityScore: req.ProductivityScore,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrInvalidMetrics):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "metric out of range")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, l)
}

// ListDailyLogs godoc
// @ID          listDailyLogs
// @Summary     List daily logs
// @Description Returns the user's full log history, oldest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Dashboard
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       since          query   string  false "Only logs on or after this date"  example(2024-03-01)
//
// @Success     200  {object} handlers.ListLogsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dashboard/logs [get]
func (h *Handlers) ListDailyLogs(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	if since := c.Query("since"); since != "" {
		logs, err := h.trackerSvc.LogsSince(ctx, uid, since)
		if err != nil {
			if errors.Is(err, services.ErrInvalidDate) {
				fail(c, http.StatusBadRequest, ErrCodeBadRequest, "since must be YYYY-MM-DD")
				return
			}
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		if logs == nil {
			logs = []domain.DailyLog{}
		}
		ok(c, http.StatusOK, ListLogsResponse{Logs: logs, Total: len(logs)})
		return
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.trackerSvc.(*services.TrackerService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.LogsStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"logs:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	logs, err := h.trackerSvc.Logs(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if logs == nil {
		logs = []domain.DailyLog{}
	}
	ok(c, http.StatusOK, ListLogsResponse{Logs: logs, Total: len(logs)})
}

// GetDailyLog godoc
// @ID          getDailyLog
// @Summary     Get one daily log
// @Description Returns the user's log for a single date.
// @Tags        Dashboard
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       date       path    string  true  "Log date (YYYY-MM-DD)"  example(2024-03-15)
//
// @Success     200  {object} domain.DailyLog
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Log not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dashboard/logs/{date} [get]
func (h *Handlers) GetDailyLog(c *gin.Context) {
	l, err := h.trackerSvc.Log(c.Request.Context(), userID(c), c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrLogNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "log not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, l)
}

// GetDashboard godoc
// @ID          getDashboard
// @Summary     Get the dashboard
// @Description Returns averages, trends, correlation insights, the weekly report, and badges over the user's history.
// @Tags        Dashboard
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object} services.Dashboard
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dashboard [get]
func (h *Handlers) GetDashboard(c *gin.Context) {
	d, err := h.trackerSvc.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeAnalysisFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, d)
}

// ExportLogsCSV godoc
// @ID          exportLogsCSV
// @Summary     Export daily logs as CSV
// @Description Downloads the user's full log history as a CSV file, oldest first.
// @Tags        Dashboard
// @Produce     plain
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {string} string "CSV document"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /dashboard/export.csv [get]
func (h *Handlers) ExportLogsCSV(c *gin.Context) {
	data, err := h.trackerSvc.ExportCSV(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="daily_logs.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
