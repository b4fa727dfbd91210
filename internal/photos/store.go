// ABOUTME: Badger-backed blob store for progress photos keyed by (type, date).
// ABOUTME: Replacing a photo deletes the old entry in the same transaction.
package photos

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fittrack/internal/errs"
	"github.com/harperreed/fittrack/internal/models"
	log "github.com/sirupsen/logrus"
)

const keyPrefix = "photo:"

// Store holds photo blobs. A nil or closed Store returns NotInitializedError.
type Store struct {
	mu    sync.RWMutex
	db    *badger.DB
	cache *Cache
}

// Option configures a Store.
type Option func(*Store)

// WithCache puts a read cache in front of the store.
func WithCache(c *Cache) Option {
	return func(s *Store) { s.cache = c }
}

// Open opens or creates the photo store in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	return open(badger.DefaultOptions(dir), opts...)
}

// OpenInMemory opens a store that lives only for the process.
func OpenInMemory(opts ...Option) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts...)
}

func open(bopts badger.Options, opts ...Option) (*Store, error) {
	bopts = bopts.
		WithLogger(log.WithField("component", "photos")).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open photo store: %w", err)
	}

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CacheStats returns the read cache's hit and miss counts. Both are zero
// without a cache.
func (s *Store) CacheStats() (hits, misses int64) {
	return s.cache.Stats()
}

// Close releases the store. Later calls fail with NotInitializedError.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ready must be called with s.mu held.
func (s *Store) ready(ctx context.Context) error {
	if s.db == nil {
		return &errs.NotInitializedError{Store: "photo"}
	}
	return ctx.Err()
}

func (s *Store) rlock(ctx context.Context) (func(), error) {
	if s == nil {
		return nil, &errs.NotInitializedError{Store: "photo"}
	}
	s.mu.RLock()
	if err := s.ready(ctx); err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	return s.mu.RUnlock, nil
}

// Put stores data under (pt, date), replacing any previous photo, and
// returns the reference to keep on the record.
func (s *Store) Put(ctx context.Context, pt models.PhotoType, date time.Time, data []byte) (string, error) {
	if !models.IsValidPhotoType(string(pt)) {
		return "", errs.Invalid("photo_type", "unknown photo type %q", pt)
	}
	if len(data) == 0 {
		return "", errs.Invalid("photo", "image data is empty")
	}
	unlock, err := s.rlock(ctx)
	if err != nil {
		return "", err
	}
	defer unlock()

	ref := models.PhotoRef(pt, date)
	key := []byte(ref)
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Set(key, encodeValue(time.Now().UTC(), data))
	})
	if err != nil {
		return "", fmt.Errorf("put photo %s: %w", ref, err)
	}

	s.cache.Invalidate(ref)
	return ref, nil
}

// Get returns the photo payload for (pt, date), or errs.ErrNotFound.
func (s *Store) Get(ctx context.Context, pt models.PhotoType, date time.Time) ([]byte, error) {
	p, err := s.GetPhoto(ctx, pt, date)
	if err != nil {
		return nil, err
	}
	return p.Data, nil
}

// GetPhoto returns the stored photo with its timestamp, or errs.ErrNotFound.
func (s *Store) GetPhoto(ctx context.Context, pt models.PhotoType, date time.Time) (*models.Photo, error) {
	ref := models.PhotoRef(pt, date)
	unlock, err := s.rlock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if cached, ok := s.cache.Get(ref); ok {
		ts, data, err := decodeValue(cached)
		if err == nil {
			return &models.Photo{Type: pt, Date: models.Day(date), Data: data, Timestamp: ts}, nil
		}
	}

	var raw []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ref))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("photo %s: %w", ref, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get photo %s: %w", ref, err)
	}

	ts, data, err := decodeValue(raw)
	if err != nil {
		return nil, fmt.Errorf("decode photo %s: %w", ref, err)
	}
	s.cache.Set(ref, raw)
	return &models.Photo{Type: pt, Date: models.Day(date), Data: data, Timestamp: ts}, nil
}

// GetRef returns the image bytes a record ref points at. Store refs are
// read from the store; inline data: URLs are decoded directly.
func (s *Store) GetRef(ctx context.Context, ref string) ([]byte, error) {
	if models.IsInlinePhoto(ref) {
		return DecodeDataURL(ref)
	}
	pt, date, err := models.ParsePhotoRef(ref)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, pt, date)
}

// Keys lists every stored photo reference in key order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	unlock, err := s.rlock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var keys []string
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return keys, nil
}

// Count returns the number of stored photos.
func (s *Store) Count(ctx context.Context) (int, error) {
	keys, err := s.Keys(ctx)
	return len(keys), err
}

// DropAll deletes every photo.
func (s *Store) DropAll() error {
	unlock, err := s.rlock(context.Background())
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop photos: %w", err)
	}
	s.cache.Clear()
	return nil
}

// DecodeDataURL extracts the payload of a base64 data: URL.
func DecodeDataURL(ref string) ([]byte, error) {
	header, payload, ok := strings.Cut(ref, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding %q", header)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	return data, nil
}

// Values are an 8-byte big-endian unix-nano timestamp followed by the image.
func encodeValue(ts time.Time, data []byte) []byte {
	buf := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(buf, uint64(ts.UnixNano()))
	copy(buf[8:], data)
	return buf
}

func decodeValue(raw []byte) (time.Time, []byte, error) {
	if len(raw) < 8 {
		return time.Time{}, nil, fmt.Errorf("value too short")
	}
	ts := time.Unix(0, int64(binary.BigEndian.Uint64(raw[:8]))).UTC()
	return ts, raw[8:], nil
}
