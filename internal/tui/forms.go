package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/store"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// formHost runs one huh form at a time inside a view. Field values live
// behind pointers so they survive the value copies Bubble Tea makes of
// every model.
type formHost struct {
	form   *huh.Form
	title  string
	submit func() tea.Cmd
}

func (f formHost) active() bool { return f.form != nil }

// open shows form and arranges for submit to run once it completes.
func (f *formHost) open(title string, form *huh.Form, submit func() tea.Cmd) tea.Cmd {
	f.title = title
	f.form = form.WithShowHelp(true).WithShowErrors(true)
	f.submit = submit
	return f.form.Init()
}

func (f *formHost) close() {
	f.form = nil
	f.submit = nil
}

func (f *formHost) update(msg tea.Msg) tea.Cmd {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		f.close()
		return statusCmd("Cancelled")
	}

	form, cmd := f.form.Update(msg)
	if ff, ok := form.(*huh.Form); ok {
		f.form = ff
	}

	switch f.form.State {
	case huh.StateCompleted:
		submit := f.submit
		f.close()
		if submit == nil {
			return cmd
		}
		return tea.Batch(cmd, submit())
	case huh.StateAborted:
		f.close()
		return statusCmd("Cancelled")
	}
	return cmd
}

func (f formHost) view(width int) string {
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(f.title), "", f.form.View())
	return activePanelStyle.Width(width).Render(content)
}

// confirmForm asks a yes/no question; the answer lands in *ok.
func confirmForm(question string, ok *bool) *huh.Form {
	*ok = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(question).Affirmative("Delete").Negative("Keep").Value(ok),
		),
	)
}

// --- Validation ---

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func requiredChoice(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("select a %s", field)
		}
		return nil
	}
}

func validHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("hours must be a number")
	}
	if v <= 0 {
		return errors.New("hours must be greater than zero")
	}
	return nil
}

// validOptionalAmount accepts an empty string or a non-negative number.
func validOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("must be a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validSize(s string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return errors.New("size must be a whole number of bytes")
	}
	if v < 0 {
		return errors.New("size must not be negative")
	}
	return nil
}

func validDate(s string) error {
	if _, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validDate(s)
}

func validClock(s string) error {
	if _, err := time.Parse(clockLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("use HH:MM")
	}
	return nil
}

// --- Parsing (inputs are validated first) ---

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v
}

func parseOptionalFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return store.Ptr(parseFloat(s))
}

func parseDate(s string) time.Time {
	t, _ := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	return t
}

func parseOptionalDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return store.Ptr(parseDate(s))
}

// parseDateClock joins a validated date and HH:MM into one local time.
func parseDateClock(date, clock string) time.Time {
	d := parseDate(date)
	c, _ := time.Parse(clockLayout, strings.TrimSpace(clock))
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local)
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return store.Ptr(strings.TrimSpace(s))
}

func formatFloatInput(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// --- Options ---

func clientOptions(clients []store.Client) []huh.Option[string] {
	opts := make([]huh.Option[string], len(clients))
	for i, c := range clients {
		opts[i] = huh.NewOption(c.Name, c.ID)
	}
	return opts
}

func caseOptions(cases []store.Case) []huh.Option[string] {
	opts := make([]huh.Option[string], len(cases))
	for i, c := range cases {
		opts[i] = huh.NewOption(c.CaseNumber+" "+c.Title, c.ID)
	}
	return opts
}

func memberOptions(members []store.TeamMember) []huh.Option[string] {
	opts := make([]huh.Option[string], len(members))
	for i, m := range members {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", m.Name, m.Role), m.ID)
	}
	return opts
}

func enumOptions[T ~string](values []T) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), v)
	}
	return opts
}
