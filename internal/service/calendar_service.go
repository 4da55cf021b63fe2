package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
)

// CalendarService renders a user's telework schedule as an iCalendar
// (RFC 5545) feed: one all-day VEVENT per approved override, plus the
// remote days declared in the weekly pattern.
type CalendarService interface {
	UserCalendar(ctx context.Context, userID string, start, end time.Time) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService builds the CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) UserCalendar(ctx context.Context, userID string, start, end time.Time) (string, error) {
	profile, err := s.repo.TeleworkProfile.GetByUserID(ctx, userID)
	if err != nil {
		// Feed without a profile is just the approved overrides.
		profile = nil
	}

	overrides, err := s.repo.TeleworkOverride.ListByUserRange(ctx, userID, &start, &end)
	if err != nil {
		s.logger.Error("loading overrides for calendar", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Orchestr'A//Telework//FR")

	now := time.Now()
	overridden := make(map[string]bool, len(overrides))

	for i := range overrides {
		o := &overrides[i]
		if o.ApprovalStatus != model.StatusApproved {
			continue
		}
		overridden[o.Date.Format(dateLayout)] = true

		event := cal.AddEvent(o.OverrideID + "@orchestra")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(o.Date)
		event.SetAllDayEndAt(o.Date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Telework: %s", o.Mode))
		if o.Reason != "" {
			event.SetDescription(o.Reason)
		}
	}

	// Recurring remote days from the weekly pattern, skipping days already
	// covered by an override.
	if profile != nil {
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			key := day.Format(dateLayout)
			if overridden[key] {
				continue
			}
			if profile.ModeOn(day) != model.ModeRemote {
				continue
			}
			event := cal.AddEvent(fmt.Sprintf("%s_%s_pattern@orchestra", userID, key))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			event.SetSummary("Telework: remote (weekly pattern)")
		}
	}

	return cal.Serialize(), nil
}
