// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"time"
)

// Row is one normalized result row handed over by the ingestion collaborator.
// The core never parses raw uploaded formats itself.
type Row struct {
	Position        int     `json:"position"` // 1-based; 0 when DNF
	DNF             bool    `json:"dnf"`
	ParticipantID   string  `json:"participant_id"`
	Name            string  `json:"name"`
	Team            string  `json:"team"`
	Country         string  `json:"country,omitempty"`
	Rating          int     `json:"rating"`           // pre-race rating; 0 when absent
	PredictedRating int     `json:"predicted_rating"` // rating source for predictions; 0 when absent
	Time            float64 `json:"time"`             // elapsed seconds
	Distance        float64 `json:"distance"`         // meters covered
	RacePoints      int     `json:"race_points,omitempty"`
	Bot             bool    `json:"bot"`
}

// Finished reports whether the row represents a classified finisher.
func (r Row) Finished() bool {
	return !r.DNF && r.Position > 0
}

// AppliedTrigger records one bonus trigger that fired and was applied.
type AppliedTrigger struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Reason string `json:"reason,omitempty"`
}

// GCSummary is the tracked rider's view of a classification run, embedded in
// the event result of a tour stage.
type GCSummary struct {
	Position       int     `json:"position"`
	CumulativeTime float64 `json:"cumulative_time"`
	GapToLeader    float64 `json:"gap_to_leader"`
	StagesIncluded int     `json:"stages_included"`
	Provisional    bool    `json:"provisional"`
	BonusPoints    int     `json:"bonus_points"`
}

// EventResult is the persisted outcome of one (rider, event) pair. It is
// immutable once written; reprocessing with an unchanged position is a no-op.
type EventResult struct {
	EventNumber       int              `json:"event_number"`
	StageIndex        int              `json:"stage_index"`
	Position          int              `json:"position"` // 0 when DNF
	DNF               bool             `json:"dnf"`
	Time              float64          `json:"time"`
	Distance          float64          `json:"distance"`
	Rating            int              `json:"rating"`
	PredictedPosition int              `json:"predicted_position"` // 0 when no prediction
	Points            int              `json:"points"`
	BonusPoints       int              `json:"bonus_points"`
	TriggerBonus      int              `json:"trigger_bonus"`
	TriggersApplied   []AppliedTrigger `json:"triggers_applied,omitempty"`
	Awards            []string         `json:"awards,omitempty"`
	CreditsEarned     int              `json:"credits_earned"`
	GC                *GCSummary       `json:"gc,omitempty"`
	Recap             string           `json:"recap"`
	ProcessedAt       time.Time        `json:"processed_at"`
}

// HasAward reports whether the result carries the given award id.
func (e *EventResult) HasAward(id string) bool {
	for _, a := range e.Awards {
		if a == id {
			return true
		}
	}
	return false
}

// RivalryEntry tracks cumulative head-to-head stats against one opponent.
type RivalryEntry struct {
	Name       string  `json:"name"`
	Team       string  `json:"team"`
	Country    string  `json:"country,omitempty"`
	Rating     int     `json:"rating"`
	Races      int     `json:"races"`
	Wins       int     `json:"wins"`   // rider finished ahead
	Losses     int     `json:"losses"` // opponent finished ahead
	TotalGap   float64 `json:"total_gap"`
	ClosestGap float64 `json:"closest_gap"`
	GapRaces   int     `json:"gap_races"` // encounters with a meaningful time gap
	LastEvent  int     `json:"last_event"`
}

// AvgGap returns the mean meaningful time gap, or 0 when none was recorded.
func (e *RivalryEntry) AvgGap() float64 {
	if e.GapRaces == 0 {
		return 0
	}
	return e.TotalGap / float64(e.GapRaces)
}

// RivalData aggregates a rider's rivalry table and current top rivals.
type RivalData struct {
	Encounters map[string]*RivalryEntry `json:"encounters,omitempty"`
	TopRivals  []string                 `json:"top_rivals,omitempty"`
}

// TourProgress tracks completion of the ordered multi-stage tour.
type TourProgress struct {
	Completed map[int]bool `json:"completed,omitempty"` // event number -> done
}

// Done reports whether the given tour event has been completed.
func (t TourProgress) Done(eventNumber int) bool {
	return t.Completed[eventNumber]
}

// Mark records completion of a tour event.
func (t *TourProgress) Mark(eventNumber int) {
	if t.Completed == nil {
		t.Completed = make(map[int]bool)
	}
	t.Completed[eventNumber] = true
}

// TriggerState holds the rider's equipped bonus triggers and cooldowns.
type TriggerState struct {
	Equipped  []string        `json:"equipped,omitempty"`
	SlotCount int             `json:"slot_count"`
	Resting   map[string]bool `json:"resting,omitempty"`
}

// RecordRef points at the event where a lifetime record was set.
type RecordRef struct {
	EventNumber int       `json:"event_number"`
	EventName   string    `json:"event_name"`
	Value       float64   `json:"value"`
	Detail      string    `json:"detail,omitempty"`
	SetAt       time.Time `json:"set_at"`
}

// LifetimeStats accumulates across every processed event, including special
// events that never advance stage progression.
type LifetimeStats struct {
	TotalDistanceKm    float64    `json:"total_distance_km"`
	TotalClimbingM     float64    `json:"total_climbing_m"`
	TotalRaceTime      float64    `json:"total_race_time"`
	TotalDNFs          int        `json:"total_dnfs"`
	WorseThanPredicted int        `json:"worse_than_predicted"` // classified finishes below prediction
	BiggestGiant       *RecordRef `json:"biggest_giant,omitempty"`
	BestVsPrediction   *RecordRef `json:"best_vs_prediction,omitempty"`
	HighestRating      *RecordRef `json:"highest_rating,omitempty"`
	BiggestWinMargin   *RecordRef `json:"biggest_win_margin,omitempty"`
	ConsecutiveBeat    int        `json:"consecutive_beat"` // prediction beats in a row
	OneTimeAwards      []string   `json:"one_time_awards,omitempty"`
}

// Rider is the per-rider aggregate career record. Created on the first
// processed result, mutated on every result, never deleted.
type Rider struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Team           string               `json:"team"`
	CurrentStage   int                  `json:"current_stage"`
	SeasonComplete bool                 `json:"season_complete"`
	UsedChoices    []int                `json:"used_choices,omitempty"`
	Tour           TourProgress         `json:"tour"`
	Results        map[int]*EventResult `json:"results,omitempty"` // event number -> result
	TotalPoints    int                  `json:"total_points"`
	TotalEvents    int                  `json:"total_events"`
	TotalWins      int                  `json:"total_wins"`
	TotalPodiums   int                  `json:"total_podiums"`
	Credits        int                  `json:"credits"`
	Traits         map[string]int       `json:"traits,omitempty"` // named attributes, 0..100
	Rivals         RivalData            `json:"rivals"`
	Triggers       TriggerState         `json:"triggers"`
	Lifetime       LifetimeStats        `json:"lifetime"`
	AwardCounts    map[string]int       `json:"award_counts,omitempty"`
}

// NewRider creates a fresh career record positioned at the first stage.
func NewRider(id, name string) *Rider {
	return &Rider{
		ID:           id,
		Name:         name,
		CurrentStage: 1,
		Results:      make(map[int]*EventResult),
		Triggers:     TriggerState{SlotCount: 1},
	}
}

// Result returns the stored result for an event, or nil.
func (r *Rider) Result(eventNumber int) *EventResult {
	if r.Results == nil {
		return nil
	}
	return r.Results[eventNumber]
}

// CompletedEvents returns the event numbers with stored results, ascending.
func (r *Rider) CompletedEvents() []int {
	out := make([]int, 0, len(r.Results))
	for n := range r.Results {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// UsedChoice reports whether a one-time choice event was already consumed.
func (r *Rider) UsedChoice(eventNumber int) bool {
	for _, n := range r.UsedChoices {
		if n == eventNumber {
			return true
		}
	}
	return false
}

// Trait returns the named trait value, defaulting to the neutral midpoint.
func (r *Rider) Trait(name string) int {
	if v, ok := r.Traits[name]; ok {
		return v
	}
	return 50
}

// ClassificationStanding is one rider's row in a multi-stage aggregate.
type ClassificationStanding struct {
	ParticipantID  string          `json:"participant_id"`
	Name           string          `json:"name"`
	Team           string          `json:"team"`
	Rating         int             `json:"rating"`
	Bot            bool            `json:"bot"`
	CumulativeTime float64         `json:"cumulative_time"`
	Rank           int             `json:"rank"`
	GapToLeader    float64         `json:"gap_to_leader"`
	StageTimes     map[int]float64 `json:"stage_times,omitempty"`
	ActualStages   int             `json:"actual_stages"`
}

// SeasonStanding is one entry in the ranked season-points table spanning real
// and simulated participants.
type SeasonStanding struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Team          string `json:"team"`
	Rating        int    `json:"rating"`
	Bot           bool   `json:"bot"`
	Events        int    `json:"events"`
	Simulated     int    `json:"simulated"` // events backfilled rather than raced
	Points        int    `json:"points"`
	Rank          int    `json:"rank"`
}

// ResultsSnapshot is the shared per-event output for downstream consumers.
type ResultsSnapshot struct {
	SnapshotID  string    `json:"snapshot_id"`
	Season      int       `json:"season"`
	EventNumber int       `json:"event_number"`
	Rows        []Row     `json:"rows"`
	StoredAt    time.Time `json:"stored_at"`
}

// StoryUsage records a narrative story consumed by a rider. Once recorded the
// story is permanently excluded from future selection for that rider.
type StoryUsage struct {
	StoryID     string    `json:"story_id"`
	EventNumber int       `json:"event_number"`
	UsedAt      time.Time `json:"used_at"`
}
