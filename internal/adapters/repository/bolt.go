package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/veloforge/paceline/internal/domain/model"
)

const (
	bucketRiders    = "riders"
	bucketResults   = "results"
	bucketNarrative = "narrative_history"
	bucketStandings = "standings"
)

// Bolt is the bbolt-backed Store implementation. Documents are stored as
// JSON under per-concern buckets.
type Bolt struct {
	db      *bbolt.DB
	timeout time.Duration
	mode    os.FileMode
}

// Option applies a configuration option to the Bolt store.
type Option func(*Bolt)

// WithTimeout bounds how long opening waits on the file lock.
func WithTimeout(d time.Duration) Option {
	return func(b *Bolt) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithFileMode overrides the database file permissions.
func WithFileMode(mode os.FileMode) Option {
	return func(b *Bolt) {
		if mode != 0 {
			b.mode = mode
		}
	}
}

// Open opens (creating if needed) a bbolt store at path.
func Open(path string, opts ...Option) (*Bolt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("open store: %w", ErrEmptyKey)
	}
	b := &Bolt{timeout: time.Second, mode: 0o600}
	for _, opt := range opts {
		opt(b)
	}
	db, err := bbolt.Open(filepath.Clean(path), b.mode, &bbolt.Options{Timeout: b.timeout})
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	b.db = db
	if err := b.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// Close closes the underlying database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *Bolt) ensureBuckets() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketRiders, bucketResults, bucketNarrative, bucketStandings} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func (b *Bolt) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil || b.db == nil {
		return ErrNotOpen
	}
	return nil
}

// Rider fetches a career record by participant id.
func (b *Bolt) Rider(ctx context.Context, id string) (*model.Rider, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyKey
	}
	var rider model.Rider
	err := b.view(bucketRiders, []byte(id), &rider)
	if err != nil {
		return nil, err
	}
	return &rider, nil
}

// PutRider persists a full career record.
func (b *Bolt) PutRider(ctx context.Context, rider *model.Rider) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	if rider == nil || strings.TrimSpace(rider.ID) == "" {
		return ErrEmptyKey
	}
	return b.put(bucketRiders, []byte(rider.ID), rider)
}

// Riders returns every stored career record.
func (b *Bolt) Riders(ctx context.Context) ([]*model.Rider, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	var out []*model.Rider
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRiders)).ForEach(func(k, v []byte) error {
			var rider model.Rider
			if err := json.Unmarshal(v, &rider); err != nil {
				return fmt.Errorf("%w: rider %s: %v", ErrCorrupted, k, err)
			}
			out = append(out, &rider)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StoriesUsed returns the ids of stories already consumed by the rider.
func (b *Bolt) StoriesUsed(ctx context.Context, riderID string) (map[string]bool, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	var history []model.StoryUsage
	err := b.view(bucketNarrative, []byte(riderID), &history)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	used := make(map[string]bool, len(history))
	for _, u := range history {
		used[u.StoryID] = true
	}
	return used, nil
}

// RecordStory appends one consumed story to the rider's history.
func (b *Bolt) RecordStory(ctx context.Context, riderID string, usage model.StoryUsage) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(riderID) == "" {
		return ErrEmptyKey
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketNarrative))
		var history []model.StoryUsage
		if payload := bucket.Get([]byte(riderID)); payload != nil {
			if err := json.Unmarshal(payload, &history); err != nil {
				return fmt.Errorf("%w: story history %s: %v", ErrCorrupted, riderID, err)
			}
		}
		history = append(history, usage)
		payload, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("marshal story history: %w", err)
		}
		return bucket.Put([]byte(riderID), payload)
	})
}

// Standings fetches the season standings table.
func (b *Bolt) Standings(ctx context.Context, seasonNumber int) ([]model.SeasonStanding, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	var rows []model.SeasonStanding
	if err := b.view(bucketStandings, standingsKey(seasonNumber), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// PutStandings replaces the season standings table.
func (b *Bolt) PutStandings(ctx context.Context, seasonNumber int, rows []model.SeasonStanding) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.put(bucketStandings, standingsKey(seasonNumber), rows)
}

// Snapshot fetches the shared per-event results snapshot.
func (b *Bolt) Snapshot(ctx context.Context, seasonNumber, eventNumber int) (*model.ResultsSnapshot, error) {
	if err := b.ready(ctx); err != nil {
		return nil, err
	}
	var snap model.ResultsSnapshot
	if err := b.view(bucketResults, snapshotKey(seasonNumber, eventNumber), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// PutSnapshot persists the shared per-event results snapshot.
func (b *Bolt) PutSnapshot(ctx context.Context, snap *model.ResultsSnapshot) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	if snap == nil {
		return ErrEmptyKey
	}
	return b.put(bucketResults, snapshotKey(snap.Season, snap.EventNumber), snap)
}

func (b *Bolt) view(bucket string, key []byte, dest any) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(bucket)).Get(key)
		if payload == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(payload, dest); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", ErrCorrupted, bucket, key, err)
		}
		return nil
	})
}

func (b *Bolt) put(bucket string, key []byte, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", bucket, err)
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(key, payload)
	})
}

func standingsKey(seasonNumber int) []byte {
	return []byte(fmt.Sprintf("season_%d", seasonNumber))
}

func snapshotKey(seasonNumber, eventNumber int) []byte {
	return []byte(fmt.Sprintf("season_%d_event_%d", seasonNumber, eventNumber))
}
