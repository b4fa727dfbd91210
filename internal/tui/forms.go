// ABOUTME: Huh forms for editing settings and confirming destructive actions.
// ABOUTME: Form values are strings; Update turns them into a typed settings update.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
	"go.uber.org/multierr"
)

// SettingsInput holds the editable settings as form strings.
type SettingsInput struct {
	Name            string
	InitialWeight   string
	TargetWeight    string
	Deadline        string
	ReminderEnabled bool
	ReminderTime    string
	Theme           string
}

// NewSettingsInput fills the form values from s.
func NewSettingsInput(s models.Settings) *SettingsInput {
	in := &SettingsInput{
		Name:            s.Name,
		InitialWeight:   formatKg(s.InitialWeight),
		TargetWeight:    formatKg(s.TargetWeight),
		ReminderEnabled: s.ReminderEnabled,
		ReminderTime:    s.ReminderTime,
		Theme:           string(s.Theme),
	}
	if s.Deadline != nil {
		in.Deadline = models.FormatDate(*s.Deadline)
	}
	return in
}

// Form builds the settings form bound to in.
func (in *SettingsInput) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Initial weight (kg)").Value(&in.InitialWeight).
				Validate(func(s string) error { _, err := parseKg(s); return err }),
			huh.NewInput().Title("Target weight (kg)").Value(&in.TargetWeight).
				Validate(func(s string) error { _, err := parseKg(s); return err }),
			huh.NewInput().Title("Deadline (YYYY-MM-DD, blank for none)").Value(&in.Deadline).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := models.ParseDate(s)
					return err
				}),
		).Title("Goal"),
		huh.NewGroup(
			huh.NewConfirm().Title("Daily reminder").Value(&in.ReminderEnabled),
			huh.NewInput().Title("Reminder time (HH:MM)").Value(&in.ReminderTime),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", string(models.ThemeDark)),
					huh.NewOption("Light", string(models.ThemeLight)),
				).Value(&in.Theme),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)
}

// Update converts the form values into a full settings update. Parse
// failures are returned as validation errors.
func (in *SettingsInput) Update() (models.SettingsUpdate, error) {
	var err error
	u := models.SettingsUpdate{
		ReminderEnabled: &in.ReminderEnabled,
	}

	name := strings.TrimSpace(in.Name)
	u.Name = &name

	if w, perr := parseKg(in.InitialWeight); perr != nil {
		err = multierr.Append(err, errs.Invalid("initial_weight", "%v", perr))
	} else {
		u.InitialWeight = &w
	}
	if w, perr := parseKg(in.TargetWeight); perr != nil {
		err = multierr.Append(err, errs.Invalid("target_weight", "%v", perr))
	} else {
		u.TargetWeight = &w
	}

	if d := strings.TrimSpace(in.Deadline); d == "" {
		u.ClearDeadline = true
	} else if t, perr := models.ParseDate(d); perr != nil {
		err = multierr.Append(err, errs.Invalid("deadline", "%v", perr))
	} else {
		u.Deadline = &t
	}

	reminderTime := strings.TrimSpace(in.ReminderTime)
	u.ReminderTime = &reminderTime
	theme := models.Theme(in.Theme)
	u.Theme = &theme

	if err != nil {
		return models.SettingsUpdate{}, err
	}
	return u, nil
}

// ConfirmForm asks a yes/no question, defaulting to no. affirmative
// labels the yes button.
func ConfirmForm(title, description, affirmative string, confirmed *bool) *huh.Form {
	*confirmed = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(confirmed),
		),
	)
}

func parseKg(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w <= 0 {
		return 0, fmt.Errorf("%q is not a positive weight", s)
	}
	return w, nil
}

func formatKg(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
