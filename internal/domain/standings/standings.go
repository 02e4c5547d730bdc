// Package standings builds the ranked season-points table spanning every
// racer the rider has shared a start line with, backfilling bots for events
// they skipped.
package standings

import (
	"sort"

	"github.com/veloforge/paceline/internal/domain/classification"
	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/scoring"
	"github.com/veloforge/paceline/internal/domain/season"
)

const (
	// defaultMaxBots caps how many bots survive into the published table,
	// selected by points-quintile stratification.
	defaultMaxBots = 80
	quintiles      = 5
	// defaultFieldSize sizes simulated placements when an event's real
	// field is unknown.
	defaultFieldSize = 50
	// defaultBotRating stands in for bots with no recorded rating.
	defaultBotRating = 900
)

// Input are the ingredients for one standings build. Results holds the
// actual result rows per event number the rider has completed.
type Input struct {
	RiderID   string
	RiderName string
	Events    []int // the rider's completed season events, ascending
	Results   map[int][]model.Row

	// MaxBots caps the published bot count; 0 means the default.
	MaxBots int
	// DefaultBotRating replaces a missing bot rating; 0 means the default.
	DefaultBotRating int
}

func (in Input) maxBots() int {
	if in.MaxBots > 0 {
		return in.MaxBots
	}
	return defaultMaxBots
}

func (in Input) botRating() int {
	if in.DefaultBotRating > 0 {
		return in.DefaultBotRating
	}
	return defaultBotRating
}

// Table is one built standings table.
type Table struct {
	Standings []model.SeasonStanding
	RiderRank int
}

type racer struct {
	model.SeasonStanding
	actual map[int]bool
}

// Build computes position-based points for every racer across the rider's
// completed events, simulates the events each bot skipped, and ranks the
// result. Prediction and trigger bonuses are deliberately excluded so the
// table compares like with like.
func Build(in Input) Table {
	racers := make(map[string]*racer)

	add := func(key string) *racer {
		r := racers[key]
		if r == nil {
			r = &racer{actual: make(map[int]bool)}
			racers[key] = r
		}
		return r
	}

	for _, eventNum := range in.Events {
		ev, ok := season.Lookup(eventNum)
		if !ok || season.IsSpecial(eventNum) {
			continue
		}
		for _, row := range in.Results[eventNum] {
			if !row.Finished() {
				continue
			}
			// Bots are keyed by name: their ids churn between uploads,
			// their names do not.
			key := row.ParticipantID
			if row.Bot {
				key = row.Name
			}
			r := add(key)
			r.ParticipantID = row.ParticipantID
			r.Name = row.Name
			r.Team = row.Team
			r.Bot = row.Bot
			if row.Rating > 0 {
				r.Rating = row.Rating
			}
			if !r.actual[eventNum] {
				r.actual[eventNum] = true
				r.Events++
				r.Points += scoring.Points(ev, row.Position, 0).Total
			}
		}
	}

	// Backfill: every bot is scored across all of the rider's completed
	// events, simulating the ones it skipped.
	for _, r := range racers {
		if !r.Bot {
			continue
		}
		rating := r.Rating
		if rating == 0 {
			rating = in.botRating()
		}
		for _, eventNum := range in.Events {
			if r.actual[eventNum] || season.IsSpecial(eventNum) {
				continue
			}
			ev, ok := season.Lookup(eventNum)
			if !ok {
				continue
			}
			pos := classification.SimulatePlacement(r.Name, rating, eventNum, defaultFieldSize)
			r.Points += scoring.Points(ev, pos, 0).Total
			r.Simulated++
		}
		r.Events = len(in.Events)
	}

	table := flatten(racers)
	table = limitBots(table, in.maxBots())

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].Name < table[j].Name
	})

	out := Table{Standings: table}
	for i := range table {
		table[i].Rank = i + 1
		if table[i].ParticipantID == in.RiderID {
			out.RiderRank = i + 1
		}
	}
	return out
}

func flatten(racers map[string]*racer) []model.SeasonStanding {
	out := make([]model.SeasonStanding, 0, len(racers))
	for _, r := range racers {
		out = append(out, r.SeasonStanding)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// limitBots keeps every human and at most maxBots bots, sampled evenly from
// each points quintile so the table still spans the full strength range.
func limitBots(table []model.SeasonStanding, maxBots int) []model.SeasonStanding {
	var humans, bots []model.SeasonStanding
	for _, s := range table {
		if s.Bot {
			bots = append(bots, s)
		} else {
			humans = append(humans, s)
		}
	}
	if len(bots) <= maxBots {
		return table
	}

	perQuintile := maxBots / quintiles
	quintileSize := (len(bots) + quintiles - 1) / quintiles
	kept := humans
	for q := 0; q < quintiles; q++ {
		start := q * quintileSize
		if start >= len(bots) {
			break
		}
		end := start + quintileSize
		if end > len(bots) {
			end = len(bots)
		}
		slice := bots[start:end]
		if len(slice) > perQuintile {
			slice = slice[:perQuintile]
		}
		kept = append(kept, slice...)
	}
	return kept
}
