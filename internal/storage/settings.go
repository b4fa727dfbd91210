// ABOUTME: Settings singleton persisted as one JSON value in the kv table.
// ABOUTME: Updates are typed, validated, and replace the whole value.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/validate"
)

// GetSettings returns the stored settings, or the defaults if none are saved.
func (d *DB) GetSettings(ctx context.Context) (models.Settings, error) {
	raw, err := d.GetValue(ctx, KeySettings)
	if errors.Is(err, errs.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}

	s := models.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// SaveSettings validates and stores the full settings value.
func (d *DB) SaveSettings(ctx context.Context, s models.Settings) error {
	if err := validate.Settings(s); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return d.SetValue(ctx, KeySettings, string(data))
}

// UpdateSettings applies a partial update and returns the saved result.
// Nothing is written if the merged settings fail validation.
func (d *DB) UpdateSettings(ctx context.Context, u models.SettingsUpdate) (models.Settings, error) {
	current, err := d.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	next := current.Apply(u)
	if err := d.SaveSettings(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
