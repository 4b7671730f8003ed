package service

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"fitness-planner/internal/model"
	"fitness-planner/internal/repository"
)

// MaxWeeksBack is how far back weekly reports may look.
const MaxWeeksBack = 3

// DayTotal sums one day of activity.
type DayTotal struct {
	Day        model.Weekday
	Date       time.Time
	Sessions   int
	Minutes    int
	Calories   int
	Steps      int
	DistanceKm float64
}

// WeeklyReport sums one week starting on Monday.
type WeeklyReport struct {
	Start         time.Time
	Days          [7]DayTotal
	Sessions      int
	TotalMinutes  int
	TotalCalories int
	TotalSteps    int
	TotalKm       float64
	AvgMinutes    int
	AvgCalories   int
	AvgSteps      int
	AvgKm         float64
}

// ReportService builds weekly summaries from the activity log.
type ReportService struct {
	activityRepo *repository.ActivityRepository
}

func NewReportService(activityRepo *repository.ActivityRepository) *ReportService {
	return &ReportService{activityRepo: activityRepo}
}

// Weekly reports on the week containing now, shifted back by weeksAgo weeks.
func (s *ReportService) Weekly(ctx context.Context, user model.User, now time.Time, weeksAgo int) (WeeklyReport, error) {
	if weeksAgo < 0 || weeksAgo > MaxWeeksBack {
		return WeeklyReport{}, fmt.Errorf("weeks ago must be between 0 and %d: %w", MaxWeeksBack, model.ErrValidationRejected)
	}
	start := weekStart(now).AddDate(0, 0, -7*weeksAgo)
	activities, err := s.activityRepo.ListBetween(ctx, user.ID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return WeeklyReport{}, err
	}
	return BuildWeekly(start, activities), nil
}

// BuildWeekly sums activities into the week starting at start.
// Activities outside the week are ignored.
func BuildWeekly(start time.Time, activities []model.Activity) WeeklyReport {
	report := WeeklyReport{Start: start}
	for i := range report.Days {
		report.Days[i] = DayTotal{Day: model.Week[i], Date: start.AddDate(0, 0, i)}
	}

	for _, a := range activities {
		idx := int(a.Date.Sub(start).Hours() / 24)
		if a.Date.Before(start) || idx < 0 || idx >= len(report.Days) {
			continue
		}
		day := &report.Days[idx]
		day.Sessions++
		day.Minutes += a.DurationMin
		day.Calories += a.Calories
		day.Steps += a.Steps
		day.DistanceKm += a.DistanceKm

		report.Sessions++
		report.TotalMinutes += a.DurationMin
		report.TotalCalories += a.Calories
		report.TotalSteps += a.Steps
		report.TotalKm += a.DistanceKm
	}

	report.AvgMinutes = int(math.Round(float64(report.TotalMinutes) / 7))
	report.AvgCalories = int(math.Round(float64(report.TotalCalories) / 7))
	report.AvgSteps = int(math.Round(float64(report.TotalSteps) / 7))
	report.AvgKm = math.Round(report.TotalKm/7*10) / 10
	return report
}

// Summary renders the report as Telegram HTML.
func (r WeeklyReport) Summary() string {
	var builder strings.Builder
	end := r.Start.AddDate(0, 0, 6)
	builder.WriteString("📊 <b>Weekly report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s – %s\n\n", r.Start.Format("2006-01-02"), end.Format("2006-01-02")))

	if r.Sessions == 0 {
		builder.WriteString("— no activities logged this week\n")
		return strings.TrimSpace(builder.String())
	}

	for _, day := range r.Days {
		if day.Sessions == 0 {
			builder.WriteString(fmt.Sprintf("▫️ %s — rest\n", day.Day))
			continue
		}
		builder.WriteString(fmt.Sprintf("🔥 %s — %d min · %d kcal%s (%d)\n", day.Day, day.Minutes, day.Calories, stepsAndDistance(day.Steps, day.DistanceKm), day.Sessions))
	}

	builder.WriteString(fmt.Sprintf("\n⏱ <b>Total:</b> %d min · %d kcal%s in %d sessions\n", r.TotalMinutes, r.TotalCalories, stepsAndDistance(r.TotalSteps, r.TotalKm), r.Sessions))
	builder.WriteString(fmt.Sprintf("📈 <b>Daily average:</b> %d min · %d kcal%s\n", r.AvgMinutes, r.AvgCalories, stepsAndDistance(r.AvgSteps, r.AvgKm)))
	return strings.TrimSpace(builder.String())
}

// FormatActivity renders one activity line.
func FormatActivity(a model.Activity) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏃 <b>#%d</b> %s · %d min", a.ID, html.EscapeString(a.Type), a.DurationMin))
	if a.Calories > 0 {
		sb.WriteString(fmt.Sprintf(" · %d kcal", a.Calories))
	}
	sb.WriteString(stepsAndDistance(a.Steps, a.DistanceKm))
	sb.WriteString(fmt.Sprintf("\n   📆 %s", a.Date.Format("2006-01-02")))
	if a.Notes != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(a.Notes)))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// stepsAndDistance renders the optional step and distance parts of a line.
func stepsAndDistance(steps int, km float64) string {
	var out string
	if steps > 0 {
		out += fmt.Sprintf(" · %d steps", steps)
	}
	if km > 0 {
		out += fmt.Sprintf(" · %.1f km", km)
	}
	return out
}

// weekStart returns the Monday of the calendar week containing now, as midnight UTC.
func weekStart(now time.Time) time.Time {
	day := calendarDate(now)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
