package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/service"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

// ExportHandler serves the presence report and calendar feed endpoints.
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler builds the ExportHandler.
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// WeeklyReport handles GET /api/v1/export/presence.
// The optional week query parameter (YYYY-MM-DD) selects the week to
// export; it defaults to the current week.
func (h *ExportHandler) WeeklyReport(c *gin.Context) {
	anchor := time.Now()
	if s := c.Query("week"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, 16001, "invalid week date, expected YYYY-MM-DD")
			return
		}
		anchor = t
	}

	buf, filename, err := h.exportSvc.WeeklyPresenceReport(c.Request.Context(), anchor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoUsers):
			response.NotFound(c, 16002, "no active users to report on")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// UserCalendar handles GET /api/v1/export/calendar/:userId.
// Serves an iCalendar feed of the user's remote days. The optional
// start and end query parameters (YYYY-MM-DD) bound the feed window;
// the default window is four weeks back to twelve weeks ahead.
func (h *ExportHandler) UserCalendar(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		response.BadRequest(c, 10001, "user id must not be empty")
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -28)
	end := now.AddDate(0, 0, 84)

	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, 16003, "invalid start date, expected YYYY-MM-DD")
			return
		}
		start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, 16003, "invalid end date, expected YYYY-MM-DD")
			return
		}
		end = t
	}
	if end.Before(start) {
		response.BadRequest(c, 16003, "end date before start date")
		return
	}

	feed, err := h.calendarSvc.UserCalendar(c.Request.Context(), userID, start, end)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "telework-"+userID+".ics"))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
