// ABOUTME: Photo model and reference helpers for progress pictures.
// ABOUTME: A ref is either an inline data: URL or a store key photo:<type>:<date>.
package models

import (
	"fmt"
	"strings"
	"time"
)

// PhotoType names a photo slot on a record.
type PhotoType string

const (
	PhotoFront PhotoType = "front"
	PhotoSide  PhotoType = "side"
)

// PhotoTypes lists the slots in display order.
var PhotoTypes = []PhotoType{PhotoFront, PhotoSide}

// IsValidPhotoType reports whether s names a photo slot.
func IsValidPhotoType(s string) bool {
	for _, pt := range PhotoTypes {
		if string(pt) == s {
			return true
		}
	}
	return false
}

// Photo is a stored image blob.
type Photo struct {
	Type      PhotoType
	Date      time.Time
	Data      []byte
	Timestamp time.Time
}

const refPrefix = "photo:"

// PhotoRef builds the store reference for a (type, date) key.
func PhotoRef(pt PhotoType, date time.Time) string {
	return refPrefix + string(pt) + ":" + FormatDate(date)
}

// ParsePhotoRef splits a store reference into its natural key.
func ParsePhotoRef(ref string) (PhotoType, time.Time, error) {
	rest, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		return "", time.Time{}, fmt.Errorf("not a photo ref: %q", ref)
	}
	typ, date, ok := strings.Cut(rest, ":")
	if !ok || !IsValidPhotoType(typ) {
		return "", time.Time{}, fmt.Errorf("malformed photo ref: %q", ref)
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed photo ref date: %q", ref)
	}
	return PhotoType(typ), d, nil
}

// IsInlinePhoto reports whether ref embeds the image as a data: URL.
func IsInlinePhoto(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}
