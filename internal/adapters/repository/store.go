// Package repository defines the career document store and its bbolt
// implementation.
package repository

import (
	"context"

	"github.com/veloforge/paceline/internal/domain/model"
)

// Store provides read/write access to persisted career state. All methods
// honor context cancellation on entry.
type Store interface {
	// Rider fetches a career record by participant id.
	// Returns ErrNotFound when the rider is unknown.
	Rider(ctx context.Context, id string) (*model.Rider, error)
	// PutRider persists a full career record, replacing any previous one.
	PutRider(ctx context.Context, rider *model.Rider) error
	// Riders returns every stored career record.
	Riders(ctx context.Context) ([]*model.Rider, error)

	// StoriesUsed returns the ids of narrative stories already consumed by
	// the rider. Consumed stories are excluded from selection forever.
	StoriesUsed(ctx context.Context, riderID string) (map[string]bool, error)
	// RecordStory appends one consumed story to the rider's history.
	RecordStory(ctx context.Context, riderID string, usage model.StoryUsage) error

	// Standings fetches the season standings table.
	Standings(ctx context.Context, seasonNumber int) ([]model.SeasonStanding, error)
	// PutStandings replaces the season standings table.
	PutStandings(ctx context.Context, seasonNumber int, rows []model.SeasonStanding) error

	// Snapshot fetches the shared per-event results snapshot.
	Snapshot(ctx context.Context, seasonNumber, eventNumber int) (*model.ResultsSnapshot, error)
	// PutSnapshot persists the shared per-event results snapshot.
	PutSnapshot(ctx context.Context, snap *model.ResultsSnapshot) error

	// Close releases the underlying database.
	Close() error
}
