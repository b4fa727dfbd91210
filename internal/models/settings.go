// ABOUTME: Settings singleton and its typed partial update command.
// ABOUTME: Holds the user's name, weight goal, deadline, reminder and theme.
package models

import "time"

// Theme selects the UI palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// IsValidTheme reports whether s names a known theme.
func IsValidTheme(s string) bool {
	return s == string(ThemeDark) || s == string(ThemeLight)
}

// Settings is the single mutable settings record.
type Settings struct {
	Name            string     `json:"name" yaml:"name"`
	InitialWeight   float64    `json:"initial_weight" yaml:"initial_weight"`
	TargetWeight    float64    `json:"target_weight" yaml:"target_weight"`
	Deadline        *time.Time `json:"deadline" yaml:"deadline"`
	ReminderEnabled bool       `json:"reminder_enabled" yaml:"reminder_enabled"`
	ReminderTime    string     `json:"reminder_time" yaml:"reminder_time"`
	Theme           Theme      `json:"theme" yaml:"theme"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Name:          "User",
		InitialWeight: 88.0,
		TargetWeight:  65.0,
		ReminderTime:  "20:00",
		Theme:         ThemeDark,
	}
}

// SettingsUpdate changes only the fields that are set.
type SettingsUpdate struct {
	Name            *string
	InitialWeight   *float64
	TargetWeight    *float64
	Deadline        *time.Time
	ClearDeadline   bool
	ReminderEnabled *bool
	ReminderTime    *string
	Theme           *Theme
}

// IsEmpty reports whether the update changes nothing.
func (u SettingsUpdate) IsEmpty() bool {
	return u.Name == nil && u.InitialWeight == nil && u.TargetWeight == nil &&
		u.Deadline == nil && !u.ClearDeadline && u.ReminderEnabled == nil &&
		u.ReminderTime == nil && u.Theme == nil
}

// Apply returns a copy of s with the update's fields applied.
func (s Settings) Apply(u SettingsUpdate) Settings {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.InitialWeight != nil {
		s.InitialWeight = *u.InitialWeight
	}
	if u.TargetWeight != nil {
		s.TargetWeight = *u.TargetWeight
	}
	if u.ClearDeadline {
		s.Deadline = nil
	} else if u.Deadline != nil {
		d := Day(*u.Deadline)
		s.Deadline = &d
	}
	if u.ReminderEnabled != nil {
		s.ReminderEnabled = *u.ReminderEnabled
	}
	if u.ReminderTime != nil {
		s.ReminderTime = *u.ReminderTime
	}
	if u.Theme != nil {
		s.Theme = *u.Theme
	}
	return s
}
