// Package trigger evaluates equipped bonus-gear triggers against a race
// context and applies the best ones.
package trigger

import (
	"sort"

	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

// maxApplied caps how many fired triggers score in one event.
const maxApplied = 2

// traitNames is the full trait vector checked by the balanced precondition.
var traitNames = []string{
	"confidence", "aggression", "professionalism",
	"humility", "showmanship", "resilience",
}

// Context is the race snapshot a trigger predicate may inspect.
type Context struct {
	Position  int
	Predicted int // 0 when no prediction
	// MarginToWinner is the winner's margin over second place when the
	// rider won, otherwise the rider's gap to the winner.
	MarginToWinner float64
	GapToWinner    float64 // 0 for the winner
	Category       season.Category
	EventNumber    int
	Rating         int
	Rows           []model.Row // classified finishers
	TopRivals      []string
	Trait          func(name string) int
}

func (c Context) beat() int {
	if c.Predicted == 0 {
		return 0
	}
	return c.Predicted - c.Position
}

func (c Context) trait(name string) int {
	if c.Trait == nil {
		return 50
	}
	return c.Trait(name)
}

// Definition is one trigger in the catalog: a typed predicate plus its
// preconditions and effects.
type Definition struct {
	ID     string
	Name   string
	Points int
	Reason string
	Fire   func(Context) bool
	// Requires gates the trigger on minimum trait values.
	Requires map[string]int
	// RequiresBalanced gates on every trait sitting in the 45..65 band.
	RequiresBalanced bool
	// TraitBonus is applied once per firing, alongside the points.
	TraitBonus map[string]int
}

var catalog = []Definition{
	{ID: "paceNotes", Name: "Pace Notes Earbud", Points: 3,
		Reason: "Finished within five places of prediction",
		Fire: func(c Context) bool {
			return c.Predicted > 0 && abs(c.Predicted-c.Position) <= 5
		}},
	{ID: "teamCarRecon", Name: "Team Car Recon", Points: 4,
		Reason: "Top 10 or close gap to winner",
		Fire: func(c Context) bool {
			return c.Position <= 10 || c.MarginToWinner < 45
		}},
	{ID: "sprintPrimer", Name: "Sprint Primer", Points: 4,
		Reason: "Strong sprint or top 8 finish",
		Fire:   func(c Context) bool { return c.Position <= 8 }},
	{ID: "aeroWheels", Name: "Aero Wheels", Points: 6,
		Reason: "Beat prediction by five or more inside the top 15",
		Fire: func(c Context) bool {
			return c.beat() >= 5 && c.Position <= 15
		}},
	{ID: "cadenceNutrition", Name: "Cadence Nutrition", Points: 5,
		Reason: "Within 20s of the winner",
		Fire:   func(c Context) bool { return c.GapToWinner <= 20 }},
	{ID: "soigneurSession", Name: "Soigneur Session", Points: 5,
		Reason: "Predicted and finished top 5",
		Fire: func(c Context) bool {
			return c.Predicted > 0 && c.Predicted <= 5 && c.Position <= 5
		}},
	{ID: "preRaceMassage", Name: "Pre-Race Massage", Points: 7,
		Reason: "Predicted top 10 and made the podium",
		Fire: func(c Context) bool {
			return c.Predicted > 0 && c.Predicted <= 10 && c.Position <= 3
		}},
	{ID: "climbingGears", Name: "Climbing Gears Tune", Points: 8,
		Reason: "Climbing day top 5",
		Fire: func(c Context) bool {
			return c.Category == season.CategoryClimbing && c.Position <= 5
		}},
	{ID: "aggroRaceKit", Name: "Aggro Race Kit", Points: 7,
		Reason: "Top 5, or top 10 within 20s",
		Fire: func(c Context) bool {
			return c.Position <= 5 || (c.Position <= 10 && c.MarginToWinner < 20)
		}},
	{ID: "domestiqueHelp", Name: "Domestique Help", Points: 10,
		Reason: "Beat a higher-rated rider inside the top 5",
		Fire: func(c Context) bool {
			if c.Position > 5 {
				return false
			}
			for _, r := range c.Rows {
				if r.Rating > c.Rating && r.Position > c.Position {
					return true
				}
			}
			return false
		}},
	{ID: "recoveryBoots", Name: "Recovery Boots", Points: 8,
		Reason: "Tour stage top 5",
		Fire: func(c Context) bool {
			for _, n := range season.TourEvents() {
				if c.EventNumber == n {
					return c.Position <= 5
				}
			}
			return false
		}},
	{ID: "directorsTablet", Name: "Director's Tactics Tablet", Points: 9,
		Reason: "Big beat of prediction, or podium from a deep prediction",
		Fire: func(c Context) bool {
			return c.beat() >= 8 || (c.Predicted >= 10 && c.Position <= 3)
		}},
	{ID: "mentalCoach", Name: "Mental Coach Session", Points: 5,
		Reason:     "Beat prediction",
		Fire:       func(c Context) bool { return c.beat() > 0 },
		TraitBonus: map[string]int{"confidence": 5}},
	{ID: "aggressionKit", Name: "Aggression Training Kit", Points: 6,
		Reason:     "Won the race",
		Fire:       func(c Context) bool { return c.Position == 1 },
		TraitBonus: map[string]int{"aggression": 5}},
	{ID: "tacticalRadio", Name: "Tactical Team Radio", Points: 5,
		Reason:     "Finished in the top 10",
		Fire:       func(c Context) bool { return c.Position <= 10 },
		TraitBonus: map[string]int{"professionalism": 5}},
	{ID: "professionalAttitude", Name: "Professional Mindset Course", Points: 5,
		Reason:     "Completed the race",
		Fire:       func(c Context) bool { return c.Position > 0 },
		TraitBonus: map[string]int{"professionalism": 5}},
	{ID: "confidenceBooster", Name: "Champion's Mindset", Points: 8,
		Reason:   "Podium finish",
		Fire:     func(c Context) bool { return c.Position <= 3 },
		Requires: map[string]int{"confidence": 70}},
	{ID: "aggressorHelmet", Name: "Aggressor's Helmet", Points: 8,
		Reason: "Win or aggressive beat of prediction",
		Fire: func(c Context) bool {
			return c.Position == 1 || c.beat() >= 5
		},
		Requires: map[string]int{"aggression": 70}},
	{ID: "teamLeaderJersey", Name: "Team Leader's Jersey", Points: 7,
		Reason:   "Consistent top 15 finish",
		Fire:     func(c Context) bool { return c.Position <= 15 },
		Requires: map[string]int{"professionalism": 70}},
	{ID: "calmAnalyst", Name: "Calm Analyst System", Points: 7,
		Reason: "Finished within three places of prediction",
		Fire: func(c Context) bool {
			return c.Predicted > 0 && abs(c.Predicted-c.Position) <= 3
		},
		Requires: map[string]int{"professionalism": 70}},
	{ID: "humbleChampion", Name: "Humble Champion's Kit", Points: 7,
		Reason:   "Podium finish",
		Fire:     func(c Context) bool { return c.Position <= 3 },
		Requires: map[string]int{"humility": 70}},
	{ID: "showmanGear", Name: "Showman's Performance Kit", Points: 10,
		Reason:   "Won the race",
		Fire:     func(c Context) bool { return c.Position == 1 },
		Requires: map[string]int{"showmanship": 70}},
	{ID: "comebackKing", Name: "Comeback King's Badge", Points: 8,
		Reason:   "Beat prediction by three or more",
		Fire:     func(c Context) bool { return c.beat() >= 3 },
		Requires: map[string]int{"resilience": 70}},
	{ID: "balancedApproach", Name: "Balanced Approach Module", Points: 6,
		Reason:           "Finished top 10",
		Fire:             func(c Context) bool { return c.Position <= 10 },
		RequiresBalanced: true},
}

// Lookup returns the catalog definition for an id.
func Lookup(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Applied is one trigger that fired and scored.
type Applied struct {
	model.AppliedTrigger
	TraitBonus map[string]int
}

// Evaluate runs the rider's active triggers against the context. Equipped
// ids beyond the slot count are ignored, resting triggers are skipped, and
// only the two highest point values among those that fired actually apply.
// Resting is set solely on applied triggers; everything else comes off rest.
func Evaluate(state *model.TriggerState, ctx Context) []Applied {
	slots := state.SlotCount
	if slots < 1 {
		slots = 1
	}
	active := state.Equipped
	if len(active) > slots {
		active = active[:slots]
	}

	var fired []Definition
	for _, id := range active {
		if state.Resting[id] {
			continue
		}
		def, ok := Lookup(id)
		if !ok || !meets(def, ctx) {
			continue
		}
		if def.Fire(ctx) {
			fired = append(fired, def)
		}
	}

	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].Points > fired[j].Points
	})
	if len(fired) > maxApplied {
		fired = fired[:maxApplied]
	}

	state.Resting = make(map[string]bool)
	out := make([]Applied, 0, len(fired))
	for _, def := range fired {
		state.Resting[def.ID] = true
		out = append(out, Applied{
			AppliedTrigger: model.AppliedTrigger{
				ID:     def.ID,
				Name:   def.Name,
				Points: def.Points,
				Reason: def.Reason,
			},
			TraitBonus: def.TraitBonus,
		})
	}
	return out
}

// meets checks trait preconditions.
func meets(def Definition, ctx Context) bool {
	for name, min := range def.Requires {
		if ctx.trait(name) < min {
			return false
		}
	}
	if def.RequiresBalanced {
		for _, name := range traitNames {
			v := ctx.trait(name)
			if v < 45 || v > 65 {
				return false
			}
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
