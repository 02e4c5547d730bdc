package narrative

import (
	"math/rand"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

func event(n int) season.Event {
	ev, ok := season.Lookup(n)
	if !ok {
		panic("unknown event in test")
	}
	return ev
}

func TestTierFor(t *testing.T) {
	Convey("Positions map onto performance tiers", t, func() {
		So(TierFor(1), ShouldEqual, TierWin)
		So(TierFor(2), ShouldEqual, TierPodium)
		So(TierFor(3), ShouldEqual, TierPodium)
		So(TierFor(4), ShouldEqual, TierTop10)
		So(TierFor(10), ShouldEqual, TierTop10)
		So(TierFor(11), ShouldEqual, TierMidpack)
		So(TierFor(20), ShouldEqual, TierMidpack)
		So(TierFor(21), ShouldEqual, TierBack)
	})
}

func TestSelect(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		sel := NewSelector()

		Convey("The season opener draws from the opening stories", func() {
			ctx := Context{RiderID: "r1", EventNumber: 1, EventName: "Coast and Roast Crit", Position: 15, Races: 1, StagesDone: 1}
			st, ok := sel.Select(ctx, nil)
			So(ok, ShouldBeTrue)
			So(st.Category, ShouldEqual, CategorySeasonOpening)
		})

		Convey("A first win is dominated by the breakthrough story", func() {
			ctx := Context{
				RiderID: "r1", EventNumber: 6, EventName: "Easy Hill Climb",
				Position: 1, Races: 4, StagesDone: 4, TotalWins: 1,
				Recent: []int{12, 8, 5, 1}, FirstWin: true,
			}
			st, ok := sel.Select(ctx, nil)
			So(ok, ShouldBeTrue)
			So(st.ID, ShouldEqual, "break_first_win")
		})

		Convey("A used story is never selected again", func() {
			ctx := Context{
				RiderID: "r1", EventNumber: 6, Position: 1, Races: 4,
				StagesDone: 4, TotalWins: 1, Recent: []int{12, 8, 5, 1}, FirstWin: true,
			}
			st, ok := sel.Select(ctx, map[string]bool{"break_first_win": true})
			So(ok, ShouldBeTrue)
			So(st.ID, ShouldNotEqual, "break_first_win")
		})

		Convey("Selection is deterministic for a rider and event", func() {
			ctx := Context{RiderID: "r9", EventNumber: 5, EventName: "North Lake Points Race", Position: 9, Races: 5, StagesDone: 5}
			a, okA := sel.Select(ctx, nil)
			b, okB := sel.Select(ctx, nil)
			So(okA, ShouldBeTrue)
			So(okB, ShouldBeTrue)
			So(a.ID, ShouldEqual, b.ID)
		})

		Convey("An injected random source drives the band pick", func() {
			seeded := NewSelector(WithRand(rand.New(rand.NewSource(7))))
			ctx := Context{RiderID: "r2", EventNumber: 1, Position: 20, Races: 1, StagesDone: 1}
			st, ok := seeded.Select(ctx, nil)
			So(ok, ShouldBeTrue)
			So(st.Category, ShouldEqual, CategorySeasonOpening)
		})

		Convey("An empty catalog yields no story", func() {
			empty := NewSelector(WithStories(nil))
			_, ok := empty.Select(Context{RiderID: "r1", EventNumber: 3, Position: 5, Races: 3}, nil)
			So(ok, ShouldBeFalse)
		})

		Convey("Special events pull the invitational stories", func() {
			ctx := Context{RiderID: "r1", EventNumber: 101, EventName: "Singapore Criterium", Position: 7, Races: 5, StagesDone: 4}
			st, ok := sel.Select(ctx, nil)
			So(ok, ShouldBeTrue)
			So(st.Category, ShouldEqual, CategorySpecial)
		})
	})
}

func TestClaimValidation(t *testing.T) {
	Convey("Given a story asserting multiple podiums", t, func() {
		only := []Story{{
			ID: "podium_run", Category: CategoryBreakthrough, Weight: 0.9,
			Text:   "Three races, three podiums.",
			When:   Condition{Tiers: []Tier{TierPodium}, ConsecutivePodiums: 3},
			Claims: []Claim{ClaimMultiplePodiums},
		}}
		sel := NewSelector(WithStories(only))
		base := Context{
			RiderID: "r1", EventNumber: 8, Position: 2, Races: 5,
			Recent: []int{3, 2, 2},
		}

		Convey("It is rejected when the record shows a single podium", func() {
			ctx := base
			ctx.TotalPodiums = 1
			_, ok := sel.Select(ctx, nil)
			So(ok, ShouldBeFalse)
		})

		Convey("It is accepted when the record backs the claim", func() {
			ctx := base
			ctx.TotalPodiums = 3
			st, ok := sel.Select(ctx, nil)
			So(ok, ShouldBeTrue)
			So(st.ID, ShouldEqual, "podium_run")
		})
	})

	Convey("Multi-season claims are always rejected", t, func() {
		only := []Story{{
			ID: "last_year", Category: CategoryMotivation, Weight: 0.9,
			Text:   "Last season taught you plenty.",
			When:   Condition{AnyTier: true},
			Claims: []Claim{ClaimMultiSeason},
		}}
		sel := NewSelector(WithStories(only))
		ctx := Context{RiderID: "r1", EventNumber: 9, Position: 4, Races: 9, TotalWins: 3}
		_, ok := sel.Select(ctx, nil)
		So(ok, ShouldBeFalse)
	})

	Convey("Rivalry stories require an established rival", t, func() {
		sel := NewSelector()
		ctx := Context{RiderID: "r1", EventNumber: 8, Position: 2, Races: 6, StagesDone: 6, Recent: []int{4, 3, 2}}
		st, ok := sel.Select(ctx, nil)
		So(ok, ShouldBeTrue)
		So(st.Category, ShouldNotEqual, CategoryRivalry)
	})
}

func TestConditionMatching(t *testing.T) {
	Convey("Condition fields are all-or-nothing", t, func() {
		ctx := Context{
			EventNumber: 7, Position: 2, Predicted: 9, Races: 6,
			TotalPoints: 240, Recent: []int{11, 9, 4, 2},
		}

		Convey("A tier mismatch disqualifies", func() {
			_, ok := matchScore(Condition{Tiers: []Tier{TierBack}}, ctx)
			So(ok, ShouldBeFalse)
		})

		Convey("Trait gates reject on a single low trait", func() {
			ctx.Traits = func(name string) int {
				if name == "confidence" {
					return 90
				}
				return 40
			}
			_, ok := matchScore(Condition{TraitMin: map[string]int{"confidence": 70, "humility": 65}}, ctx)
			So(ok, ShouldBeFalse)
			score, ok := matchScore(Condition{TraitMin: map[string]int{"confidence": 70}}, ctx)
			So(ok, ShouldBeTrue)
			So(score, ShouldBeGreaterThan, 0)
		})

		Convey("Exact matches outscore ranged ones", func() {
			exact, _ := matchScore(Condition{RaceNumbers: []int{7}}, ctx)
			ranged, _ := matchScore(Condition{RaceNumbers: []int{6, 7, 8}}, ctx)
			So(exact, ShouldBeGreaterThan, ranged)
		})

		Convey("Improvement scales with over-achievement", func() {
			seven := ctx
			seven.Predicted = 12
			small, _ := matchScore(Condition{MinImprovement: 5}, ctx)
			big, _ := matchScore(Condition{MinImprovement: 5}, seven)
			So(big, ShouldBeGreaterThan, small)
		})

		Convey("Win streak conditions need two consecutive wins", func() {
			_, ok := matchScore(Condition{OnStreak: true}, ctx)
			So(ok, ShouldBeFalse)
			streaking := ctx
			streaking.Recent = []int{5, 1, 1}
			streaking.Position = 1
			_, ok = matchScore(Condition{OnStreak: true}, streaking)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestBuildRecap(t *testing.T) {
	Convey("Given recap inputs", t, func() {
		Convey("Every tier produces a non-empty recap without an opening", func() {
			for _, pos := range []int{1, 2, 7, 15, 30} {
				in := RecapInput{Event: event(2), Position: pos, LossMargin: 40, StagesDone: 2, Races: 2}
				if pos == 1 {
					in.WinMargin = 12
				}
				So(BuildRecap(in), ShouldNotBeEmpty)
			}
		})

		Convey("A dominant win reads as a statement", func() {
			in := RecapInput{
				Event: event(2), Position: 1, WinMargin: 75,
				Awards: []string{"domination"}, StagesDone: 2, Races: 2,
			}
			out := BuildRecap(in)
			So(out, ShouldContainSubstring, "statement")
			So(out, ShouldContainSubstring, "Island Classic")
		})

		Convey("A photo-finish podium mentions the finish", func() {
			in := RecapInput{
				Event: event(5), Position: 2, LossMargin: 0.1,
				Awards: []string{"photoFinish"}, StagesDone: 7, Races: 7,
			}
			So(BuildRecap(in), ShouldContainSubstring, "photo finish")
		})

		Convey("Tour stages carry the overall classification", func() {
			in := RecapInput{
				Event: event(13), Position: 4, LossMargin: 20, StageNumber: 1,
				GC:         &model.GCSummary{Position: 2, GapToLeader: 14, Provisional: true},
				StagesDone: 9, Races: 9,
			}
			out := BuildRecap(in)
			So(out, ShouldContainSubstring, "2nd overall")
			So(out, ShouldContainSubstring, "Stage 1")
		})

		Convey("Winning the final stage and the overall closes the season", func() {
			in := RecapInput{
				Event: event(15), Position: 1, WinMargin: 8, StageNumber: 3,
				GC:         &model.GCSummary{Position: 1},
				StagesDone: 9, Races: 11, SeasonDone: true,
			}
			out := BuildRecap(in)
			So(out, ShouldContainSubstring, "Tour champion")
			So(out, ShouldContainSubstring, "season is complete")
		})

		Convey("An opening story gets a tier-matched transition", func() {
			in := RecapInput{
				Event: event(6), Position: 1, WinMargin: 3,
				Opening: "The training block finally paid off.", StagesDone: 4, Races: 4,
			}
			out := BuildRecap(in)
			So(out, ShouldContainSubstring, "The training block finally paid off.")
			So(strings.Count(out, "\n\n"), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("A nearby rival is mentioned at most once", func() {
			in := RecapInput{
				Event: event(7), Position: 3, LossMargin: 6,
				RivalName: "J. Moreau", RivalAhead: true, StagesDone: 6, Races: 6,
			}
			out := BuildRecap(in)
			So(strings.Count(out, "J. Moreau"), ShouldEqual, 1)
		})

		Convey("Elimination DNFs read as being pulled", func() {
			in := RecapInput{Event: event(3), Position: 22, LossMargin: 0, StagesDone: 4, Races: 4}
			So(BuildRecap(in), ShouldContainSubstring, "pulled")
		})
	})
}

func TestRaceDynamics(t *testing.T) {
	Convey("Margins classify the decisive move", t, func() {
		rr := event(2)
		So(RaceDynamics(rr, 1, 75, 0), ShouldEqual, DynSoloVictory)
		So(RaceDynamics(rr, 1, 40, 0), ShouldEqual, DynBreakawayWin)
		So(RaceDynamics(rr, 1, 10, 0), ShouldEqual, DynSmallGroup)
		So(RaceDynamics(rr, 1, 1, 0), ShouldEqual, DynBunchSprint)
		So(RaceDynamics(rr, 8, 0, 3), ShouldEqual, DynBunchSprint)
		So(RaceDynamics(rr, 8, 0, 20), ShouldEqual, DynSmallGroup)
		So(RaceDynamics(rr, 8, 0, 45), ShouldEqual, DynBreakaway)
		So(RaceDynamics(rr, 8, 0, 200), ShouldEqual, DynChasingGroup)

		Convey("Time trials are always classified as such", func() {
			So(RaceDynamics(event(4), 1, 90, 0), ShouldEqual, DynTimeTrial)
			So(RaceDynamics(event(10), 15, 0, 90), ShouldEqual, DynTimeTrial)
		})
	})
}

func TestSubstitute(t *testing.T) {
	Convey("Placeholders are replaced from the context", t, func() {
		ctx := Context{EventName: "Easy Hill Climb", Position: 3, TotalWins: 2, TotalPoints: 180}
		out := Substitute("At {eventName} you took {position} for win total {totalWins}.", ctx)
		So(out, ShouldEqual, "At Easy Hill Climb you took 3rd for win total 2.")
	})
}
