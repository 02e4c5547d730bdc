// Package scoring converts finishing positions into season points and
// evaluates per-event award predicates.
package scoring

import (
	"math"
	"sort"

	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

// fallbackMax is used when an event is missing from the catalog.
const fallbackMax = 100

// Breakdown carries the components of a points calculation.
type Breakdown struct {
	Base       float64
	Podium     int
	Prediction int
	Total      int
}

// Points computes the season points for a finishing position. predicted is
// the predicted position, 0 when no prediction exists.
func Points(ev season.Event, position, predicted int) Breakdown {
	var b Breakdown
	if position < 1 {
		return b
	}
	maxPoints := ev.MaxPoints
	if maxPoints == 0 {
		maxPoints = fallbackMax
	}

	switch ev.Profile.Curve {
	case season.CurveElimination:
		if position > ev.Profile.MaxScored {
			return b
		}
		b.Base = 45 - float64(position-1)*(35.0/19.0)
	default:
		if position > 40 {
			return b
		}
		b.Base = float64(maxPoints)/2 + float64(40-position)*(float64(maxPoints-10)/78)
	}

	switch position {
	case 1:
		b.Podium = 5
	case 2:
		b.Podium = 3
	case 3:
		b.Podium = 2
	}
	b.Prediction = PredictionBonus(position, predicted)
	b.Total = int(math.Round(b.Base + float64(b.Podium) + float64(b.Prediction)))
	return b
}

// PredictionBonus awards stepped bonus points for beating a predicted
// position. No prediction means no bonus, in either direction.
func PredictionBonus(position, predicted int) int {
	if predicted == 0 || position < 1 {
		return 0
	}
	beaten := predicted - position
	switch {
	case beaten >= 9:
		return 5
	case beaten >= 7:
		return 4
	case beaten >= 5:
		return 3
	case beaten >= 3:
		return 2
	case beaten >= 1:
		return 1
	}
	return 0
}

// PredictedPosition ranks a participant among the field by pre-race rating,
// descending. Rows without a rating carry no prediction and are excluded.
// Returns 0 when the participant has no prediction.
func PredictedPosition(rows []model.Row, participantID string) int {
	rated := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if r.DNF || r.Rating == 0 {
			continue
		}
		rated = append(rated, r)
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	for i, r := range rated {
		if r.ParticipantID == participantID {
			return i + 1
		}
	}
	return 0
}
