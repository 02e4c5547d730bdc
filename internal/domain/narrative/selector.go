package narrative

import (
	"math"
	"math/rand"
	"sort"

	"github.com/veloforge/paceline/internal/domain/season"
	"github.com/veloforge/paceline/pkg/seeded"
)

// Candidate band widths. Any candidate scoring within this fraction of the
// top score may be picked, keeping selection varied without letting weak
// stories through.
const (
	bandMulti  = 0.15
	bandSingle = 0.10
)

// Context is the season snapshot a story condition is evaluated against.
type Context struct {
	RiderID      string
	EventNumber  int
	EventName    string
	Position     int
	Predicted    int // 0 when no prediction
	Races        int // results on record, including this one
	StagesDone   int // progression stages completed
	TotalPoints  int
	TotalWins    int
	TotalPodiums int
	Recent       []int // recent finishing positions, oldest first
	FirstWin     bool
	Traits       func(name string) int
	RivalIDs     []string // tracked rival participant ids
	RivalRaces   int      // races against the current top rival
}

// Tier returns the performance tier of the current finish.
func (c Context) Tier() Tier { return TierFor(c.Position) }

func (c Context) trait(name string) int {
	if c.Traits == nil {
		return 50
	}
	return c.Traits(name)
}

// WorseResult reports a finish noticeably below prediction.
func (c Context) WorseResult() bool {
	return c.Predicted > 0 && c.Position-c.Predicted > 5
}

// WinStreak counts consecutive wins ending at the current race.
func (c Context) WinStreak() int {
	return c.streak(func(p int) bool { return p == 1 })
}

// PodiumStreak counts consecutive podiums ending at the current race.
func (c Context) PodiumStreak() int {
	return c.streak(func(p int) bool { return p >= 1 && p <= 3 })
}

// GoodStreak counts consecutive top-10s ending at the current race.
func (c Context) GoodStreak() int {
	return c.streak(func(p int) bool { return p >= 1 && p <= 10 })
}

func (c Context) streak(ok func(int) bool) int {
	n := 0
	for i := len(c.Recent) - 1; i >= 0; i-- {
		if !ok(c.Recent[i]) {
			break
		}
		n++
	}
	return n
}

func (c Context) recentTop10s() int {
	n := 0
	for _, p := range c.Recent {
		if p >= 1 && p <= 10 {
			n++
		}
	}
	return n
}

// Selector scores the catalog against a race context and picks one story.
type Selector struct {
	stories []Story
	rng     *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithStories replaces the built-in catalog.
func WithStories(stories []Story) Option {
	return func(s *Selector) { s.stories = stories }
}

// WithRand injects the random source used to pick inside the candidate
// band. Without it the pick is derived deterministically from the rider and
// event.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// NewSelector builds a selector over the built-in catalog.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{stories: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type candidate struct {
	story Story
	score float64
}

// Select returns the best-fitting unused story for the context, or false
// when nothing in the catalog fits. used holds story ids already consumed
// by this rider; they are permanently excluded.
func (s *Selector) Select(ctx Context, used map[string]bool) (Story, bool) {
	var cands []candidate
	categories := map[Category]bool{}
	for _, st := range s.stories {
		if used[st.ID] {
			continue
		}
		bonus := categoryBonus(st.Category, ctx)
		if bonus < 0 {
			continue
		}
		match, ok := matchScore(st.When, ctx)
		if !ok || !claimsHold(st.Claims, ctx) {
			continue
		}
		cands = append(cands, candidate{st, bonus + st.Weight*10 + match})
		categories[st.Category] = true
	}
	if len(cands) == 0 {
		return Story{}, false
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].story.ID < cands[j].story.ID
	})
	band := bandMulti
	if len(categories) == 1 {
		band = bandSingle
	}
	cutoff := cands[0].score * (1 - band)
	n := 0
	for n < len(cands) && cands[n].score >= cutoff {
		n++
	}
	return cands[s.rand(ctx).Intn(n)].story, true
}

func (s *Selector) rand(ctx Context) *rand.Rand {
	if s.rng != nil {
		return s.rng
	}
	v := seeded.Value(ctx.RiderID+"#story", ctx.EventNumber)
	return rand.New(rand.NewSource(int64(v * math.MaxInt32)))
}

// categoryBonus weights whole categories by how well they suit the moment.
// A negative return excludes the category outright.
func categoryBonus(cat Category, ctx Context) float64 {
	tier := ctx.Tier()
	switch cat {
	case CategorySeasonOpening:
		if ctx.EventNumber != 1 {
			return -1
		}
		return 20
	case CategorySpecial:
		if !season.IsSpecial(ctx.EventNumber) {
			return -1
		}
		return 30
	case CategoryBreakthrough:
		if ctx.FirstWin {
			return 50
		}
		if tier == TierWin || tier == TierPodium {
			return 35
		}
		return -1
	case CategorySetback:
		if tier == TierBack && ctx.WorseResult() {
			return 35
		}
		return -1
	case CategoryPersonality:
		if ctx.Races < 3 {
			return -1
		}
		return personalityBonus(ctx)
	case CategoryEarlyCareer:
		if ctx.EventNumber >= 2 && ctx.EventNumber <= 5 {
			return 10
		}
		return -1
	case CategoryLifestyle:
		if ctx.EventNumber >= 2 && ctx.EventNumber <= 7 {
			return 5
		}
		return -1
	case CategoryMidSeason:
		if ctx.EventNumber >= 6 && ctx.EventNumber <= 10 {
			return 10
		}
		return -1
	case CategoryMotivation:
		if ctx.EventNumber >= 4 && ctx.EventNumber <= 10 {
			return 8
		}
		return -1
	case CategoryLateSeason, CategoryTourPrep:
		if ctx.EventNumber >= 11 {
			return 12
		}
		return -1
	case CategoryRivalry:
		if len(ctx.RivalIDs) == 0 {
			return -1
		}
		if tier == TierWin || tier == TierPodium {
			return 8
		}
		return 0
	case CategoryLocalColor:
		return 3
	case CategoryEquipment, CategoryWeather, CategoryTravel:
		return 2
	default:
		return 0
	}
}

// personalityBonus scales with how pronounced the rider's strongest traits
// are: very strong traits (80+) dominate, merely strong ones (65+) still
// open the category.
func personalityBonus(ctx Context) float64 {
	veryStrong, strong := 0, 0
	for _, name := range traitNames {
		switch v := ctx.trait(name); {
		case v >= 80:
			veryStrong++
		case v >= 65:
			strong++
		}
	}
	if veryStrong > 0 {
		return 30 + 5*float64(veryStrong)
	}
	if strong > 0 {
		return 15 + 3*float64(strong)
	}
	return -1
}

var traitNames = []string{
	"confidence", "aggression", "professionalism",
	"humility", "showmanship", "resilience",
}

// matchScore checks every set field of a condition against the context.
// Any mismatch disqualifies the story; matches accumulate specificity
// points so precisely targeted stories outrank generic ones.
func matchScore(c Condition, ctx Context) (float64, bool) {
	score := 0.0

	if len(c.RaceNumbers) > 0 {
		if !containsInt(c.RaceNumbers, ctx.EventNumber) {
			return 0, false
		}
		if len(c.RaceNumbers) == 1 {
			score += 10
		} else {
			score += 5
		}
	}

	tier := ctx.Tier()
	switch {
	case len(c.Tiers) > 0:
		if !containsTier(c.Tiers, tier) {
			return 0, false
		}
		if len(c.Tiers) == 1 {
			score += 15
		} else {
			score += 8
		}
	case c.AnyTier:
		score += 2
	}

	if c.MinImprovement > 0 {
		if ctx.Predicted == 0 {
			return 0, false
		}
		gain := ctx.Predicted - ctx.Position
		if gain < c.MinImprovement {
			return 0, false
		}
		score += 12 + math.Min(float64(gain-c.MinImprovement), 10)
	}
	if c.ConsecutiveGood > 0 {
		n := ctx.GoodStreak()
		if n < c.ConsecutiveGood {
			return 0, false
		}
		score += 10 + 2*float64(n)
	}
	if c.ConsecutivePodiums > 0 {
		n := ctx.PodiumStreak()
		if n < c.ConsecutivePodiums {
			return 0, false
		}
		score += 15 + 3*float64(n)
	}
	if c.MinPoints > 0 {
		if ctx.TotalPoints < c.MinPoints {
			return 0, false
		}
		score += 5 + math.Min(float64(ctx.TotalPoints-c.MinPoints)/50, 10)
	}
	if len(c.WinCounts) > 0 {
		if !containsInt(c.WinCounts, ctx.TotalWins) {
			return 0, false
		}
		score += 12
	}
	if len(c.PodiumCounts) > 0 {
		if !containsInt(c.PodiumCounts, ctx.TotalPodiums) {
			return 0, false
		}
		score += 12
	}
	if len(c.StageCounts) > 0 {
		if !containsInt(c.StageCounts, ctx.StagesDone) {
			return 0, false
		}
		score += 10
	}
	if len(c.RecentPositions) > 0 {
		if len(ctx.Recent) == 0 || !containsInt(c.RecentPositions, ctx.Recent[len(ctx.Recent)-1]) {
			return 0, false
		}
		score += 10
	}
	if c.FirstWin {
		if !ctx.FirstWin {
			return 0, false
		}
		score += 25
	}
	if c.WorseResult {
		if !ctx.WorseResult() {
			return 0, false
		}
		score += 12
	}
	if c.OnStreak {
		n := ctx.WinStreak()
		if n < 2 {
			return 0, false
		}
		score += 15 + 5*float64(n)
	}
	if c.MinRaces > 0 {
		if ctx.Races < c.MinRaces {
			return 0, false
		}
		score += 3
	}
	if len(c.TraitMin) > 0 {
		// All-or-nothing: a single trait below its floor rejects the story.
		for name, min := range c.TraitMin {
			v := ctx.trait(name)
			if v < min {
				return 0, false
			}
			score += 5 + math.Min(float64(v-min)/5, 10)
		}
	}
	if c.NeedsRivals {
		if len(ctx.RivalIDs) == 0 {
			return 0, false
		}
		score += 8 + math.Min(2*float64(ctx.RivalRaces), 6)
	}
	return score, true
}

// claimsHold verifies the story's factual assertions against the rider's
// record so a line never claims history that didn't happen.
func claimsHold(claims []Claim, ctx Context) bool {
	for _, cl := range claims {
		switch cl {
		case ClaimWinStreak:
			if ctx.WinStreak() < 2 {
				return false
			}
		case ClaimMultipleWins:
			if ctx.TotalWins < 2 {
				return false
			}
		case ClaimPastWin:
			if ctx.TotalWins == 0 && ctx.Position != 1 {
				return false
			}
		case ClaimMultiplePodiums:
			if ctx.TotalPodiums < 2 {
				return false
			}
		case ClaimMultiSeason:
			return false
		case ClaimVeteran:
			if ctx.Races < 8 {
				return false
			}
		case ClaimFrontRunner:
			if ctx.recentTop10s() < 3 {
				return false
			}
		case ClaimRivalHistory:
			if len(ctx.RivalIDs) == 0 {
				return false
			}
		}
	}
	return true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsTier(ts []Tier, v Tier) bool {
	for _, t := range ts {
		if t == v {
			return true
		}
	}
	return false
}
