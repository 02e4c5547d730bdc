package scoring

import (
	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

// Award ids referenced outside the registry.
const (
	AwardGold       = "goldMedal"
	AwardSilver     = "silverMedal"
	AwardBronze     = "bronzeMedal"
	AwardGCGold     = "gcGoldMedal"
	AwardGCSilver   = "gcSilverMedal"
	AwardGCBronze   = "gcBronzeMedal"
	AwardEqualizer  = "theEqualizer"
	AwardHotStreak  = "hotStreakMedal"
	AwardZeroToHero = "zeroToHero"
)

// AwardInput is everything an award predicate may inspect for one
// (rider, event) evaluation.
type AwardInput struct {
	Event     season.Event
	Rows      []model.Row
	Row       model.Row
	Predicted int // 0 when no prediction

	// Previous event context, zero values when this is the first event or
	// the previous outing was a DNF.
	PrevPosition  int
	PrevFieldSize int

	// Consecutive prediction beats in the events immediately before this
	// one.
	PriorBeats int

	// PriorPositions holds the rider's finishing positions for every event
	// before this one, in event order. DNFs carry a zero.
	PriorPositions []int

	// Career counters accumulated before this event.
	PriorWorse int // classified finishes worse than predicted
	PriorDNFs  int
}

func (in AwardInput) finished() bool { return in.Row.Finished() }

func (in AwardInput) finishers() []model.Row {
	out := make([]model.Row, 0, len(in.Rows))
	for _, r := range in.Rows {
		if r.Finished() {
			out = append(out, r)
		}
	}
	return out
}

// winnerTimes returns the times of the first and second classified
// finishers, 0 when absent.
func (in AwardInput) winnerTimes() (first, second float64) {
	for _, r := range in.Rows {
		switch r.Position {
		case 1:
			if r.Finished() {
				first = r.Time
			}
		case 2:
			if r.Finished() {
				second = r.Time
			}
		}
	}
	return first, second
}

// timeMargins reports whether time-margin awards apply to this event.
func (in AwardInput) timeMargins() bool {
	return in.Event.Profile.TimeMeaningful
}

// Award pairs an id with its predicate and credit value.
type Award struct {
	ID      string
	Credits int
	Earn    func(in AwardInput) bool
}

// registry holds every per-event award. Predicates are evaluated in order;
// each is independent.
var registry = []Award{
	{AwardGold, 50, func(in AwardInput) bool {
		return in.finished() && in.Row.Position == 1
	}},
	{AwardSilver, 35, func(in AwardInput) bool {
		return in.finished() && in.Row.Position == 2
	}},
	{AwardBronze, 25, func(in AwardInput) bool {
		return in.finished() && in.Row.Position == 3
	}},
	{"punchingMedal", 30, func(in AwardInput) bool {
		return in.finished() && in.Predicted > 0 && in.Predicted-in.Row.Position >= 10
	}},
	{"giantKillerMedal", 40, earnGiantKiller},
	{"bullseyeMedal", 15, func(in AwardInput) bool {
		return in.finished() && in.Predicted > 0 && in.Row.Position == in.Predicted
	}},
	{AwardHotStreak, 25, func(in AwardInput) bool {
		return in.finished() && in.Predicted > 0 && in.Row.Position < in.Predicted && in.PriorBeats >= 2
	}},
	{"domination", 40, func(in AwardInput) bool {
		if !in.finished() || !in.timeMargins() || in.Row.Position != 1 {
			return false
		}
		first, second := in.winnerTimes()
		return first > 0 && second > 0 && second-first > 60
	}},
	{"closeCall", 25, func(in AwardInput) bool {
		if !in.finished() || !in.timeMargins() || in.Row.Position != 1 {
			return false
		}
		first, second := in.winnerTimes()
		if first == 0 || second == 0 {
			return false
		}
		margin := second - first
		return margin > 0 && margin < 0.5
	}},
	{"photoFinish", 20, earnPhotoFinish},
	{"darkHorse", 35, func(in AwardInput) bool {
		return in.finished() && in.Row.Position == 1 && in.Predicted >= 15
	}},
	{AwardZeroToHero, 35, earnZeroToHero},
	{"windTunnel", 0, func(in AwardInput) bool {
		return in.finished() && in.Event.Type == "time trial" &&
			in.Row.Position <= 5 && in.Predicted > 5
	}},
	{"theAccountant", 0, earnTheAccountant},
	{"lanternRouge", 10, func(in AwardInput) bool {
		if !in.finished() {
			return false
		}
		last, count := 0, 0
		for _, r := range in.finishers() {
			count++
			if r.Position > last {
				last = r.Position
			}
		}
		return count > 1 && in.Row.Position == last
	}},
	{"comeback", 25, func(in AwardInput) bool {
		if !in.finished() || in.Row.Position > 5 || in.PrevPosition == 0 {
			return false
		}
		return float64(in.PrevPosition) > float64(len(in.finishers()))/2
	}},
	{"backToBack", 0, func(in AwardInput) bool {
		return in.finished() && in.Row.Position == 1 && streakReaches(in.PriorPositions, 1, 3)
	}},
	{"podiumStreak", 50, func(in AwardInput) bool {
		return in.finished() && in.Row.Position <= 3 && streakReaches(in.PriorPositions, 3, 5)
	}},
	{"overrated", 5, func(in AwardInput) bool {
		worse := in.PriorWorse
		if in.finished() && in.Predicted > 0 && in.Row.Position > in.Predicted {
			worse++
		}
		return worse >= 5
	}},
	{"technicalIssues", 5, func(in AwardInput) bool {
		dnfs := in.PriorDNFs
		if in.Row.DNF {
			dnfs++
		}
		return dnfs >= 3
	}},
	{AwardEqualizer, 30, func(in AwardInput) bool {
		// Completion award, earned even on a DNF.
		return in.Event.Number == 102
	}},
	{"singaporeSling", 0, func(in AwardInput) bool {
		return in.Event.Number == 101 && in.finished() && in.Row.Position <= 3
	}},
}

// gcCredits maps classification awards, granted by the tour simulator rather
// than a registry predicate.
var gcCredits = map[string]int{
	AwardGCGold:   80,
	AwardGCSilver: 60,
	AwardGCBronze: 45,
}

// streakReaches reports whether the current result extends a run of
// positions within 1..maxPos to exactly the given length. Longer runs fired
// when they first reached the length and do not fire again.
func streakReaches(prior []int, maxPos, length int) bool {
	need := length - 1
	if len(prior) < need {
		return false
	}
	for i := len(prior) - need; i < len(prior); i++ {
		if prior[i] < 1 || prior[i] > maxPos {
			return false
		}
	}
	if i := len(prior) - need - 1; i >= 0 {
		if prior[i] >= 1 && prior[i] <= maxPos {
			return false
		}
	}
	return true
}

func earnGiantKiller(in AwardInput) bool {
	if !in.finished() || in.Row.Rating == 0 {
		return false
	}
	var giant model.Row
	for _, r := range in.finishers() {
		if r.Rating > giant.Rating {
			giant = r
		}
	}
	if giant.ParticipantID == "" || giant.ParticipantID == in.Row.ParticipantID {
		return false
	}
	return in.Row.Position < giant.Position
}

// earnPhotoFinish fires for anyone within 0.2s of the winner, including a
// winner who held off second place by that margin.
func earnPhotoFinish(in AwardInput) bool {
	if !in.finished() || !in.timeMargins() || in.Row.Time == 0 {
		return false
	}
	first, second := in.winnerTimes()
	if in.Row.Position == 1 {
		return second > 0 && second-in.Row.Time <= 0.2
	}
	return first > 0 && in.Row.Time-first <= 0.2
}

func earnZeroToHero(in AwardInput) bool {
	if !in.finished() || in.PrevPosition == 0 {
		return false
	}
	prevField := in.PrevFieldSize
	if prevField == 0 {
		prevField = 50
	}
	curField := len(in.finishers())
	if curField == 0 {
		return false
	}
	prevPct := float64(in.PrevPosition) / float64(prevField) * 100
	curPct := float64(in.Row.Position) / float64(curField) * 100
	return prevPct >= 80 && curPct <= 20
}

// earnTheAccountant fires in points races when the rider out-scored whoever
// crossed the line first without being that rider.
func earnTheAccountant(in AwardInput) bool {
	if !in.finished() || in.Event.Type != "points race" || in.Row.RacePoints == 0 {
		return false
	}
	var fastest model.Row
	for _, r := range in.Rows {
		if r.DNF || r.Time <= 0 {
			continue
		}
		if fastest.Time == 0 || r.Time < fastest.Time {
			fastest = r
		}
	}
	if fastest.Time == 0 || fastest.Time == in.Row.Time {
		return false
	}
	return in.Row.RacePoints > fastest.RacePoints
}

// Evaluate runs every registered award predicate and returns the earned ids
// in registry order.
func Evaluate(in AwardInput) []string {
	var earned []string
	for _, a := range registry {
		if a.Earn(in) {
			earned = append(earned, a.ID)
		}
	}
	return earned
}

const (
	perEventCreditCap = 200
	completionBonus   = 20
)

// CreditValue returns the credit value of an award id, 0 for unknown ids.
func CreditValue(id string) int {
	if c, ok := gcCredits[id]; ok {
		return c
	}
	for _, a := range registry {
		if a.ID == id {
			return a.Credits
		}
	}
	return 0
}

// Credits totals the credit income for a set of earned awards. Finishing an
// event with no awards still pays the completion bonus, and the equalizer
// completion award stacks with it. The total is capped per event.
func Credits(awardIDs []string, finished bool) int {
	total := 0
	equalizer := false
	for _, id := range awardIDs {
		total += CreditValue(id)
		if id == AwardEqualizer {
			equalizer = true
		}
	}
	switch {
	case equalizer:
		total += completionBonus
	case len(awardIDs) == 0 && finished:
		total = completionBonus
	}
	if total > perEventCreditCap {
		total = perEventCreditCap
	}
	return total
}
