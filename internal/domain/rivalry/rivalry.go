// Package rivalry detects close finishes against bot opponents and maintains
// the rider's head-to-head rivalry table.
package rivalry

import (
	"math"
	"sort"

	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

const (
	// timeProximity is the finish gap that counts as racing together.
	timeProximity = 30.0
	// distanceProximity is the equivalent for fixed-duration events where
	// every finisher records the same time.
	distanceProximity = 500.0
	// maxTopRivals caps the ranked rival list.
	maxTopRivals = 10
)

// Encounter is one close finish against a bot in a single event.
type Encounter struct {
	Opponent    model.Row
	TimeGap     float64
	DistanceGap float64
	Ahead       bool // rider finished ahead of the opponent
	// Meaningful marks encounters with a measured time gap. Distance-based
	// encounters count races and wins but contribute no gap statistics.
	Meaningful bool
}

// Detect finds every bot that finished close to the rider. Events whose
// profile disables rivalry return nothing, as does a rider DNF.
func Detect(ev season.Event, rows []model.Row, rider model.Row) []Encounter {
	if ev.Profile.SkipRivalry || !rider.Finished() {
		return nil
	}

	var out []Encounter
	for _, r := range rows {
		if !r.Bot || !r.Finished() || r.ParticipantID == rider.ParticipantID {
			continue
		}
		if ev.Profile.DistanceProximity {
			gap := math.Abs(rider.Distance - r.Distance)
			if gap > distanceProximity {
				continue
			}
			out = append(out, Encounter{
				Opponent:    r,
				DistanceGap: gap,
				Ahead:       rider.Position < r.Position,
			})
			continue
		}
		gap := math.Abs(rider.Time - r.Time)
		if gap > timeProximity {
			continue
		}
		out = append(out, Encounter{
			Opponent:    r,
			TimeGap:     gap,
			DistanceGap: math.Abs(rider.Distance - r.Distance),
			Ahead:       rider.Position < r.Position,
			Meaningful:  true,
		})
	}
	return out
}

// Update folds new encounters into the rivalry table. Reprocessing the same
// event replaces the previous gap contribution instead of double-counting.
func Update(data *model.RivalData, encounters []Encounter, eventNumber int) {
	if len(encounters) == 0 {
		return
	}
	if data.Encounters == nil {
		data.Encounters = make(map[string]*model.RivalryEntry)
	}

	for _, enc := range encounters {
		id := enc.Opponent.ParticipantID
		entry := data.Encounters[id]
		if entry == nil {
			entry = &model.RivalryEntry{}
			data.Encounters[id] = entry
			entry.Races = 1
			if enc.Ahead {
				entry.Wins = 1
			} else {
				entry.Losses = 1
			}
			if enc.Meaningful {
				entry.TotalGap = enc.TimeGap
				entry.GapRaces = 1
				entry.ClosestGap = enc.TimeGap
			}
		} else if entry.LastEvent != eventNumber {
			entry.Races++
			if enc.Ahead {
				entry.Wins++
			} else {
				entry.Losses++
			}
			if enc.Meaningful {
				entry.TotalGap += enc.TimeGap
				entry.GapRaces++
				if enc.TimeGap < entry.ClosestGap || entry.GapRaces == 1 {
					entry.ClosestGap = enc.TimeGap
				}
			}
		} else if enc.Meaningful {
			// Same event again: swap the old gap contribution for the new
			// one, leaving the race and win counters untouched.
			if entry.GapRaces > 0 {
				entry.TotalGap += enc.TimeGap - entry.TotalGap/float64(entry.GapRaces)
			} else {
				entry.TotalGap = enc.TimeGap
				entry.GapRaces = 1
			}
			if enc.TimeGap < entry.ClosestGap || entry.ClosestGap == 0 {
				entry.ClosestGap = enc.TimeGap
			}
		}

		entry.Name = enc.Opponent.Name
		entry.Team = enc.Opponent.Team
		entry.Country = enc.Opponent.Country
		entry.Rating = enc.Opponent.Rating
		entry.LastEvent = eventNumber
	}

	data.TopRivals = TopRivals(data)
}

// Score rates the strength of a rivalry. Repeated encounters are weighted
// heavily, close gaps raise the score, and an even head-to-head record earns
// up to a 50% bonus. Entries with no meaningful gap score zero.
func Score(e *model.RivalryEntry) float64 {
	if e.Races == 0 || e.GapRaces == 0 {
		return 0
	}
	base := math.Pow(float64(e.Races), 1.5) / (e.AvgGap() + 1)
	winRatio := float64(e.Wins) / float64(e.Races)
	competitiveness := 1 - math.Abs(winRatio-0.5)*2
	return base * (1 + competitiveness*0.5)
}

// TopRivals ranks the table by rivalry score and returns up to ten opponent
// ids. Zero-score entries are excluded.
func TopRivals(data *model.RivalData) []string {
	type scored struct {
		id    string
		score float64
	}
	ranked := make([]scored, 0, len(data.Encounters))
	for id, e := range data.Encounters {
		if s := Score(e); s > 0 {
			ranked = append(ranked, scored{id, s})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})
	if len(ranked) > maxTopRivals {
		ranked = ranked[:maxTopRivals]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.id
	}
	return out
}
