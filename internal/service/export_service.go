package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
)

// ── export module business errors ──

var (
	ErrExportNoUsers      = errors.New("no active users to report on")
	ErrExportGenerateFail = errors.New("generating Excel file failed")
)

// ExportService renders the weekly presence report.
//
// The report is a users x weekdays grid for one ISO week: each cell holds
// the user's effective mode for the day, derived from the profile's weekly
// pattern plus any approved override. Pending/rejected overrides are marked
// but do not change the effective mode.
type ExportService interface {
	// WeeklyPresenceReport exports the week containing anchor as .xlsx.
	// Returns the file content and a suggested filename.
	WeeklyPresenceReport(ctx context.Context, anchor time.Time) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService builds the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const reportPageSize = 1000

func (s *exportService) WeeklyPresenceReport(ctx context.Context, anchor time.Time) (*bytes.Buffer, string, error) {
	weekStart, weekEnd := isoWeekBounds(anchor)

	users, _, err := s.repo.User.List(ctx, 0, reportPageSize)
	if err != nil {
		s.logger.Error("listing users for report", zap.Error(err))
		return nil, "", err
	}

	active := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.IsActive {
			active = append(active, u)
		}
	}
	if len(active) == 0 {
		return nil, "", ErrExportNoUsers
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Presence"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "H", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Title row.
	title := fmt.Sprintf("Presence report — week of %s", weekStart.Format(dateLayout))
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// Header row: user + the seven weekdays with dates.
	f.SetCellValue(sheetName, "A2", "User")
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, col+"2", fmt.Sprintf("%s %s", day.Weekday().String()[:3], day.Format("01-02")))
	}

	// Data rows.
	row := 3
	for i := range active {
		user := &active[i]

		profile, err := s.repo.TeleworkProfile.GetByUserID(ctx, user.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("loading profile for report", zap.String("user_id", user.UserID), zap.Error(err))
			return nil, "", err
		}

		overrides, err := s.repo.TeleworkOverride.ListByUserRange(ctx, user.UserID, &weekStart, &weekEnd)
		if err != nil {
			s.logger.Error("loading overrides for report", zap.String("user_id", user.UserID), zap.Error(err))
			return nil, "", err
		}
		overrideByDay := make(map[string]*model.TeleworkOverride, len(overrides))
		for j := range overrides {
			overrideByDay[overrides[j].Date.Format(dateLayout)] = &overrides[j]
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), user.FirstName+" "+user.LastName)

		for d := 0; d < 7; d++ {
			day := weekStart.AddDate(0, 0, d)
			col, _ := excelize.ColumnNumberToName(2 + d)

			text := model.ModeOnsite
			if profile != nil {
				text = profile.ModeOn(day)
			}
			if o, ok := overrideByDay[day.Format(dateLayout)]; ok {
				switch o.ApprovalStatus {
				case model.StatusApproved:
					text = o.Mode
				case model.StatusPending:
					text = fmt.Sprintf("%s (pending %s)", text, o.Mode)
				}
			}

			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), text)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing Excel buffer", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("presence_%s.xlsx", weekStart.Format(dateLayout))
	return buf, filename, nil
}
