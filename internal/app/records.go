// ABOUTME: Record and photo operations on a session.
// ABOUTME: Saves are validated against adjacent records before anything is written.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/validate"
)

// SaveRecord validates r, stores any images, and upserts the record.
// Slots without a new image keep their existing photo. The stored record
// is returned.
func (s *Session) SaveRecord(ctx context.Context, r *models.Record, images map[models.PhotoType][]byte) (*models.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	r.Date = models.Day(r.Date)

	prev, next, err := s.db.NeighborRecords(ctx, r.Date)
	if err != nil {
		return nil, err
	}
	if err := validate.Record(r, prev, next); err != nil {
		return nil, err
	}

	for _, pt := range models.PhotoTypes {
		data, ok := images[pt]
		if !ok {
			continue
		}
		ref, err := s.photos.Put(ctx, pt, r.Date, data)
		if err != nil {
			return nil, fmt.Errorf("store %s photo: %w", pt, err)
		}
		r.WithPhotoRef(pt, ref)
	}

	r.Timestamp = s.now().UTC()
	if err := s.db.UpsertRecord(ctx, r); err != nil {
		return nil, err
	}
	return s.db.GetRecord(ctx, r.Date)
}

// Record returns the record for date.
func (s *Session) Record(ctx context.Context, date time.Time) (*models.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.GetRecord(ctx, date)
}

// Records returns every record, oldest first.
func (s *Session) Records(ctx context.Context) ([]*models.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.ListRecords(ctx)
}

// RecordsSince returns records on or after since, oldest first.
func (s *Session) RecordsSince(ctx context.Context, since time.Time) ([]*models.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.ListRecordsSince(ctx, since)
}

// DeleteRecord removes the record for date. Its photos stay in the store.
func (s *Session) DeleteRecord(ctx context.Context, date time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.DeleteRecord(ctx, date)
}

// LoggedToday reports whether a record exists for the session's today.
func (s *Session) LoggedToday(ctx context.Context) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.db.HasRecordOn(ctx, s.Today())
}

// Photo returns the image for a record's slot. It fails with
// errs.ErrNotFound when the record or the slot is empty.
func (s *Session) Photo(ctx context.Context, pt models.PhotoType, date time.Time) ([]byte, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	r, err := s.db.GetRecord(ctx, date)
	if err != nil {
		return nil, err
	}
	ref := r.PhotoRef(pt)
	if ref == nil {
		return nil, fmt.Errorf("%s photo for %s: %w", pt, r.DateString(), errs.ErrNotFound)
	}
	return s.photos.GetRef(ctx, *ref)
}

// AttachPhoto stores an image for an existing record's slot.
func (s *Session) AttachPhoto(ctx context.Context, pt models.PhotoType, date time.Time, data []byte) (*models.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	r, err := s.db.GetRecord(ctx, date)
	if err != nil {
		return nil, err
	}
	ref, err := s.photos.Put(ctx, pt, r.Date, data)
	if err != nil {
		return nil, err
	}
	r.WithPhotoRef(pt, ref)
	r.Timestamp = s.now().UTC()
	if err := s.db.UpsertRecord(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
