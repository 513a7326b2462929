package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"life-dashboard/internal/recurrence"
)

// EntryKind tells which tracker a report entry came from.
type EntryKind string

const (
	KindChore EntryKind = "chore"
	KindPlant EntryKind = "plant"
)

// ReportEntry is one due item in the daily report.
type ReportEntry struct {
	Kind  EntryKind `json:"kind"`
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Owner string    `json:"owner,omitempty"`
	DueAt time.Time `json:"dueAt"`
	Days  int       `json:"daysUntilDue"`
}

// Report groups everything overdue or due soon at one instant.
type Report struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Overdue     []ReportEntry `json:"overdue"`
	DueSoon     []ReportEntry `json:"dueSoon"`
}

// Empty reports whether nothing needs attention.
func (r Report) Empty() bool {
	return len(r.Overdue) == 0 && len(r.DueSoon) == 0
}

// ReminderService builds the due report shared by the CLI and the bot.
type ReminderService struct {
	chores *ChoreService
	plants *PlantService
	now    func() time.Time
}

func NewReminderService(chores *ChoreService, plants *PlantService, now func() time.Time) *ReminderService {
	if now == nil {
		now = time.Now
	}
	return &ReminderService{chores: chores, plants: plants, now: now}
}

// Build collects chores first, then plants, each ordered by due date.
func (s *ReminderService) Build(ctx context.Context) (Report, error) {
	report := Report{GeneratedAt: s.now(), Overdue: []ReportEntry{}, DueSoon: []ReportEntry{}}

	chores, err := s.chores.List(ctx, string(recurrence.FilterAll), string(recurrence.SortDueDate))
	if err != nil {
		return Report{}, fmt.Errorf("report chores: %w", err)
	}
	for _, c := range chores {
		report.add(c.Status, ReportEntry{
			Kind: KindChore, ID: c.ID, Name: c.Name, Owner: c.AssignedTo,
			DueAt: c.NextDueAt, Days: c.DaysUntilDue,
		})
	}

	plants, err := s.plants.List(ctx, string(recurrence.FilterAll), string(recurrence.SortDueDate))
	if err != nil {
		return Report{}, fmt.Errorf("report plants: %w", err)
	}
	for _, p := range plants {
		report.add(p.Status, ReportEntry{
			Kind: KindPlant, ID: p.ID, Name: p.Name,
			DueAt: p.NextWateringAt, Days: p.DaysUntilDue,
		})
	}

	return report, nil
}

func (r *Report) add(status recurrence.Status, e ReportEntry) {
	switch status {
	case recurrence.StatusOverdue:
		r.Overdue = append(r.Overdue, e)
	case recurrence.StatusDueSoon:
		r.DueSoon = append(r.DueSoon, e)
	}
}

// Text renders the report as plain text.
func (r Report) Text() string {
	return r.render(func(s string) string { return s }, func(s string) string { return s })
}

// HTML renders the report for Telegram's HTML parse mode.
func (r Report) HTML() string {
	return r.render(html.EscapeString, func(s string) string { return "<b>" + s + "</b>" })
}

func (r Report) render(escape, bold func(string) string) string {
	var b strings.Builder
	b.WriteString("📋 " + bold("Fällig im Haushalt") + "\n")
	b.WriteString(fmt.Sprintf("🗓 %s\n\n", r.GeneratedAt.Format("02.01.2006")))

	b.WriteString("⚠️ " + bold("Überfällig") + "\n")
	if len(r.Overdue) == 0 {
		b.WriteString("— nichts überfällig\n")
	}
	for _, e := range r.Overdue {
		b.WriteString(formatEntry(e, escape))
	}

	b.WriteString("\n⏳ " + bold(fmt.Sprintf("In den nächsten %d Tagen", recurrence.DueSoonDays)) + "\n")
	if len(r.DueSoon) == 0 {
		b.WriteString("— nichts fällig\n")
	}
	for _, e := range r.DueSoon {
		b.WriteString(formatEntry(e, escape))
	}

	return strings.TrimSpace(b.String())
}

func formatEntry(e ReportEntry, escape func(string) string) string {
	var sb strings.Builder

	icon := "🧹"
	if e.Kind == KindPlant {
		icon = "🪴"
	}
	sb.WriteString(fmt.Sprintf("%s #%d %s", icon, e.ID, escape(strings.TrimSpace(e.Name))))
	if owner := strings.TrimSpace(e.Owner); owner != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", escape(owner)))
	}
	sb.WriteString(" · " + dueText(e.Days))
	sb.WriteByte('\n')
	return sb.String()
}

func dueText(days int) string {
	switch {
	case days == 0:
		return "heute fällig"
	case days == -1:
		return "seit 1 Tag überfällig"
	case days < 0:
		return fmt.Sprintf("seit %d Tagen überfällig", -days)
	case days == 1:
		return "morgen fällig"
	default:
		return fmt.Sprintf("in %d Tagen fällig", days)
	}
}
