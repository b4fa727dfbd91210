// ABOUTME: Record model for one day's logged body measurements.
// ABOUTME: Records are unique by date and carry optional photo references.
package models

import "time"

// Record is one day's measurements.
type Record struct {
	Date          time.Time
	Weight        float64
	Waist         *float64
	Water         *float64
	Sleep         *float64
	Note          *string
	FrontPhotoRef *string
	SidePhotoRef  *string
	Timestamp     time.Time
}

// NewRecord creates a Record for the given date stamped with the current time.
func NewRecord(date time.Time, weight float64) *Record {
	return &Record{
		Date:      Day(date),
		Weight:    weight,
		Timestamp: time.Now().UTC(),
	}
}

// WithWaist sets the waist measurement in centimetres.
func (r *Record) WithWaist(cm float64) *Record {
	r.Waist = &cm
	return r
}

// WithWater sets water intake in litres.
func (r *Record) WithWater(litres float64) *Record {
	r.Water = &litres
	return r
}

// WithSleep sets hours slept.
func (r *Record) WithSleep(hours float64) *Record {
	r.Sleep = &hours
	return r
}

// WithNote sets a free-text note.
func (r *Record) WithNote(note string) *Record {
	r.Note = &note
	return r
}

// WithTimestamp overrides the modification instant.
func (r *Record) WithTimestamp(t time.Time) *Record {
	r.Timestamp = t
	return r
}

// WithPhotoRef sets the reference for one photo slot.
func (r *Record) WithPhotoRef(pt PhotoType, ref string) *Record {
	switch pt {
	case PhotoFront:
		r.FrontPhotoRef = &ref
	case PhotoSide:
		r.SidePhotoRef = &ref
	}
	return r
}

// PhotoRef returns the reference stored for a slot, or nil.
func (r *Record) PhotoRef(pt PhotoType) *string {
	switch pt {
	case PhotoFront:
		return r.FrontPhotoRef
	case PhotoSide:
		return r.SidePhotoRef
	}
	return nil
}

// DateString returns the record's date in DateLayout.
func (r *Record) DateString() string {
	return FormatDate(r.Date)
}
