package narrative

import (
	"fmt"
	"strings"

	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

// Dynamics describes how the decisive move of the race unfolded, derived
// from finishing margins.
type Dynamics string

const (
	DynSoloVictory  Dynamics = "solo victory"
	DynBreakawayWin Dynamics = "breakaway win"
	DynSmallGroup   Dynamics = "small group"
	DynBunchSprint  Dynamics = "bunch sprint"
	DynTimeTrial    Dynamics = "time trial"
	DynBreakaway    Dynamics = "breakaway"
	DynChasingGroup Dynamics = "chasing group"
)

// RaceDynamics classifies the finish from the rider's perspective: the
// winner's margin when they won, their deficit otherwise.
func RaceDynamics(ev season.Event, position int, winMargin, lossMargin float64) Dynamics {
	if ev.Category == season.CategoryTimeTrial {
		return DynTimeTrial
	}
	if position == 1 {
		switch {
		case winMargin > 60:
			return DynSoloVictory
		case winMargin > 30:
			return DynBreakawayWin
		case winMargin > 5:
			return DynSmallGroup
		default:
			return DynBunchSprint
		}
	}
	switch {
	case lossMargin < 5:
		return DynBunchSprint
	case lossMargin < 30:
		return DynSmallGroup
	case lossMargin < 60:
		return DynBreakaway
	default:
		return DynChasingGroup
	}
}

// RecapInput carries everything the recap builder reads. Opening is the
// already-substituted selected story text and may be empty.
type RecapInput struct {
	Event       season.Event
	Position    int
	Predicted   int
	WinMargin   float64 // winner's gap to second when the rider won
	LossMargin  float64 // rider's gap to the winner otherwise
	Awards      []string
	GC          *model.GCSummary
	StageNumber int // 1..3 inside the tour, 0 elsewhere
	Opening     string
	StagesDone  int // progression stages completed including this race
	Races       int
	Recent      []int // recent positions, oldest first
	NextEvent   string
	SeasonDone  bool
	RivalName   string // rival who finished in proximity, "" when none
	RivalAhead  bool   // that rival beat the rider
}

func (in RecapInput) hasAward(id string) bool {
	for _, a := range in.Awards {
		if a == id {
			return true
		}
	}
	return false
}

// BuildRecap assembles the two-or-three paragraph post-race recap. The
// result is never empty: every tier has a fallback template.
func BuildRecap(in RecapInput) string {
	tier := TierFor(in.Position)

	p1 := in.Opening
	if p1 != "" {
		p1 += " " + transition(tier, in.Event.Name, in.Races)
	} else {
		p1 = contextualOpening(in)
	}

	p2 := performance(in, tier)
	if rival := rivalMention(in); rival != "" {
		p2 += " " + rival
	}

	parts := []string{p1, p2}
	if includeSeasonContext(in) {
		if p3 := seasonImplications(in); p3 != "" {
			parts = append(parts, p3)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Substitute replaces {placeholder} variables in a story text.
func Substitute(text string, ctx Context) string {
	r := strings.NewReplacer(
		"{eventName}", ctx.EventName,
		"{position}", fmt.Sprintf("%d%s", ctx.Position, ordinal(ctx.Position)),
		"{totalWins}", fmt.Sprintf("%d", ctx.TotalWins),
		"{totalPoints}", fmt.Sprintf("%d", ctx.TotalPoints),
	)
	return r.Replace(text)
}

// transition bridges the selected story into the race account. Each tier
// has its own pool; a fragment is chosen by race count so consecutive
// events don't repeat.
func transition(tier Tier, eventName string, races int) string {
	var pool []string
	switch tier {
	case TierWin:
		pool = []string{
			"And at " + eventName + ", everything came together.",
			"Then came " + eventName + ", and with it the proof.",
		}
	case TierPodium:
		pool = []string{
			"At " + eventName + ", it was time to prove it.",
			eventName + " gave you the chance to show it.",
		}
	case TierBack:
		pool = []string{
			eventName + " would test that resolve in ways you didn't expect.",
			"Then " + eventName + " reminded you how hard this sport can be.",
		}
	default:
		pool = []string{
			eventName + " was the next challenge in this journey.",
			"Next up: " + eventName + ".",
		}
	}
	if races <= 0 {
		races = 1
	}
	return pool[races%len(pool)]
}

// contextualOpening is the paragraph-one fallback when no story fit.
func contextualOpening(in RecapInput) string {
	name := in.Event.Name
	if in.Event.Number == 1 {
		return "This is it, your first race. " + name + " marks the beginning of everything you've been working toward. The nerves are real and the competition is fierce, but you're here. You're racing."
	}
	switch in.StageNumber {
	case 1:
		return "The tour begins with " + name + ". Three stages, one overall classification. This first stage sets the tone for how the next two days unfold."
	case 2:
		return "Stage 2 of the tour. Yesterday's result matters, but today's matters more. The overall is fluid, time gaps can swing, and every second counts."
	case 3:
		return "The queen stage. The overall will be decided today on the hardest climbs of the tour. Whatever gap you hold, defending or attacking, it comes down to suffering and strength."
	}
	switch in.Event.Category {
	case season.CategoryTimeTrial:
		return name + ": just you, your bike, and the clock. No tactics, no drafting, no hiding. Pure power and pacing discipline."
	case season.CategoryClimbing:
		return name + " is a simple equation: you versus gravity. The road goes up, and either you have the legs to go fast or you don't."
	}
	if in.Event.Type == "track elimination" {
		return name + ": last rider each lap is out. No room for error, no time to rest, just relentless positioning and repeated maximal efforts."
	}
	if in.StagesDone <= 3 {
		return "Each race teaches you something new. " + name + " was another lesson in what it takes to compete at this level."
	}
	if in.StagesDone >= 8 {
		return "The season is winding down, but the racing intensity hasn't. " + name + " mattered just as much as the first race. Maybe more."
	}
	return name + " arrived, and you were ready to race."
}

func performance(in RecapInput, tier Tier) string {
	name := in.Event.Name
	pos := fmt.Sprintf("%d%s", in.Position, ordinal(in.Position))
	dyn := RaceDynamics(in.Event, in.Position, in.WinMargin, in.LossMargin)
	placeGain := 0
	if in.Predicted > 0 {
		placeGain = in.Predicted - in.Position
	}

	switch tier {
	case TierWin:
		return winPerformance(in, dyn, placeGain)
	case TierPodium:
		step, capStep := "second", "Second"
		if in.Position == 3 {
			step, capStep = "third", "Third"
		}
		switch {
		case in.Event.Category == season.CategoryTimeTrial:
			return name + " demanded perfect pacing and you delivered. " + capStep + " place, just " + gapText(in.LossMargin) + " behind the winner. In a time trial that gap is pure power difference. You left everything out there."
		case in.StageNumber > 0:
			s := fmt.Sprintf("Stage %d produced a podium finish in %s place.", in.StageNumber, step)
			return s + gcSentence(in)
		case in.hasAward("photoFinish"):
			return name + " produced one of those finishes that gets remembered: a genuine photo finish, several riders across the line in a desperate sprint. " + capStep + " by centimeters. Close enough to taste the win, but podiums are earned, not given."
		case placeGain >= 5:
			return fmt.Sprintf("Coming into %s you were predicted %d%s, but you had other ideas. You worked your way into the sharp end and held your place. %s place, a podium that beat expectations.", name, in.Predicted, ordinal(in.Predicted), capStep)
		default:
			return name + " delivered a solid podium in " + step + " place. " + dynamicsText(dyn, false, in.LossMargin) + " Not every podium is dramatic. Some are just the product of good racing."
		}
	case TierTop10:
		switch {
		case in.Event.Category == season.CategoryTimeTrial:
			return name + " ended in " + pos + " place. The pacing discipline held, but others simply had more watts today. A top-10 in a time trial still means the engine is competitive."
		case in.StageNumber > 0:
			return fmt.Sprintf("Stage %d: %s place. A solid result that keeps you in the race.", in.StageNumber, pos) + gcSentence(in)
		case placeGain >= 5:
			return fmt.Sprintf("%s produced a %s place finish, well clear of the predicted %d%s. You rode smart, conserved when it counted, and had enough left when the race broke apart. Results like this build momentum.", name, pos, in.Predicted, ordinal(in.Predicted))
		default:
			return name + " ended in " + pos + " place. You stayed competitive throughout, never lost the main group, and finished about where the numbers said you would. These steady results accumulate."
		}
	case TierMidpack:
		switch {
		case in.Event.Category == season.CategoryTimeTrial:
			return name + " was a reality check. You paced it as best you could, but the power wasn't there today. " + pos + " place. Time trials don't lie about fitness."
		case in.StageNumber > 0:
			return fmt.Sprintf("Stage %d didn't go to plan: %s place, caught in the second group when the race split.", in.StageNumber, pos) + gcSentence(in)
		default:
			return name + " was tougher than expected, a " + pos + " place finish. The race split early and you spent the day chasing without quite bridging. Days like this happen. The key is learning from them."
		}
	default:
		switch {
		case in.Event.Category == season.CategoryTimeTrial:
			return name + " was a struggle from start to finish. Pacing off, power absent, and the result shows it: " + pos + " place. Time trials are humbling. Back to training."
		case in.Event.Type == "track elimination":
			return "The elimination was brutal today. You tried to hold the front but positioning mistakes compound fast, and you were pulled with laps still to run. Track racing punishes imperfection. You'll learn from this."
		case in.StageNumber > 0:
			return fmt.Sprintf("Stage %d was one of those days where nothing clicked: %s place. Fatigue, positioning, or just thin form, the result wasn't what you wanted. The tour is harder than it looks.", in.StageNumber, pos)
		default:
			return name + " was one of those days where nothing clicked, a " + pos + " place finish that stung. But here's the thing about racing: bad days make you better, and you finished. That matters."
		}
	}
}

func winPerformance(in RecapInput, dyn Dynamics, placeGain int) string {
	name := in.Event.Name
	switch {
	case in.Event.Category == season.CategoryTimeTrial:
		if in.hasAward("darkHorse") {
			return fmt.Sprintf("The predictions had you down for %d%s, but predictions don't account for perfect pacing. You started controlled, built into the rhythm, and held the power to the line. First place, clear of the field. The kind of solo effort that proves the engine.", in.Predicted, ordinal(in.Predicted))
		}
		return name + " was you versus the clock, threshold power perfectly paced from start to finish. No tactics, no draft. First place. The numbers don't lie: strongest legs today."
	case in.Event.Type == "track elimination":
		return "The elimination rewards the sharpest positioning and the deepest reserves. You held the front every single lap, covered every surge, and watched rider after rider get pulled until only you remained. Winner."
	case in.StageNumber > 0:
		var s string
		if in.hasAward("domination") {
			s = fmt.Sprintf("Stage %d wasn't just a win, it was a statement. You took control early and never let go, first across the line with a serious gap.", in.StageNumber)
		} else {
			s = fmt.Sprintf("Stage %d victory! You timed the effort perfectly and crossed the line first.", in.StageNumber)
		}
		return s + gcSentence(in)
	case in.hasAward("darkHorse"):
		return fmt.Sprintf("Nobody predicted this. Coming into %s you were forecast %d%s: respectable, not threatening. %s First place. Winner. The kind of result that changes how you see yourself as a racer.", name, in.Predicted, ordinal(in.Predicted), dynamicsText(dyn, true, in.WinMargin))
	case in.hasAward("domination"):
		return name + " wasn't just a win, it was a statement. You went clear early and never looked back, the gap growing until you crossed the line over a minute ahead. Not luck, not tactics. Legs."
	case in.hasAward("closeCall"):
		return name + " came down to the absolute wire, a sprint so close you genuinely didn't know if you'd won. First by less than half a second. Races this tight are decided by millimeters, and today they went your way."
	case placeGain >= 5:
		return fmt.Sprintf("The predictions had you down for %d%s at %s, but those numbers didn't account for the form you brought. %s First place, better than predicted, better than hoped.", in.Predicted, ordinal(in.Predicted), name, dynamicsText(dyn, true, in.WinMargin))
	default:
		return name + " played out well and you executed flawlessly. " + dynamicsText(dyn, true, in.WinMargin) + " First across the line. This is what preparation looks like."
	}
}

func dynamicsText(dyn Dynamics, winner bool, gap float64) string {
	g := gapText(gap)
	switch dyn {
	case DynSoloVictory:
		return "You went clear early and rode solo to the finish, over a minute ahead. Nobody could follow when you attacked."
	case DynBreakawayWin:
		return "You made the decisive breakaway and had the strongest legs when it mattered, crossing the line " + g + " clear of the chasers."
	case DynSmallGroup:
		if winner {
			return "It came down to a small group sprint, a handful of riders all with a chance. You timed it perfectly and took it by " + g + "."
		}
		return "A small group sprint decided it. You were in the mix but came up just short, " + g + " behind the winner."
	case DynBunchSprint:
		if winner {
			return "The whole pack came to the line together and you won the chaotic bunch sprint. Positioning, timing, and raw power all landed at once."
		}
		return "The whole pack came to the line together. You were well placed but couldn't quite match the winner's kick in the final meters."
	case DynTimeTrial:
		return "In a time trial every second is earned through sustained power, perfectly paced."
	case DynBreakaway:
		return "The race was decided by a breakaway that went clear early. You worked hard in the chase to limit the losses, but the gap held."
	case DynChasingGroup:
		return "The race split apart and you spent the day in the chasing group, working to limit losses without ever bringing the leaders back."
	default:
		return "The race unfolded fast and tactical, decided in the final kilometers."
	}
}

// gcSentence appends the rider's overall position to a stage-race line.
func gcSentence(in RecapInput) string {
	if in.GC == nil {
		return " Every second gained today matters for the overall."
	}
	gc := in.GC
	var s string
	if gc.Position == 1 {
		s = " You now lead the overall classification"
	} else {
		s = fmt.Sprintf(" You now sit %d%s overall", gc.Position, ordinal(gc.Position))
	}
	if gc.GapToLeader > 0 {
		s += ", " + gapText(gc.GapToLeader) + " behind the leader"
	}
	s += "."
	if gc.Provisional {
		s += " The classification is still provisional with stages left to race."
	}
	return s
}

func rivalMention(in RecapInput) string {
	if in.RivalName == "" {
		return ""
	}
	if in.RivalAhead {
		return in.RivalName + " finished just ahead of you again. That scorecard isn't settling itself."
	}
	return "And you put " + in.RivalName + " behind you, which made the result taste a little sweeter."
}

// includeSeasonContext decides whether the forward-look paragraph appears.
// Always for the opener, tour stages and the late season; every other race
// early on.
func includeSeasonContext(in RecapInput) bool {
	switch {
	case in.Races <= 1:
		return true
	case in.StageNumber > 0:
		return true
	case in.SeasonDone:
		return true
	case in.StagesDone >= 6:
		return true
	default:
		return in.StagesDone%2 == 0
	}
}

func seasonImplications(in RecapInput) string {
	if in.StageNumber > 0 {
		return tourImplications(in)
	}
	if in.SeasonDone {
		return "That's the season complete. Nine stages, countless kilometers, and you reached the finish. Whatever the final standings show, you showed up and raced. That's what matters."
	}
	if in.Races <= 1 {
		return "One race down, many more to go. " + nextRacePhrase(in) + " Every race from here builds on the last: lessons learned, fitness gained, confidence accumulated. The journey is underway."
	}

	var opener string
	switch {
	case podiumStreak(in.Recent):
		opener = "This is the kind of form that wins championships, consistent podium finishes race after race. "
	case recentGood(in.Recent) >= 2:
		opener = "The results are trending the right way and momentum is building. "
	case in.Position >= 20:
		opener = "Not every result will be great, and that's the reality of racing. "
	default:
		opener = "Steady progress through the season, one race at a time. "
	}

	switch {
	case in.StagesDone <= 4:
		return opener + nextRacePhrase(in) + " The season is young, the points are accumulating, and there's plenty of racing ahead to make your mark."
	case in.StagesDone <= 7:
		return opener + nextRacePhrase(in) + " You're past the halfway point and the standings are taking shape, but there's still time to climb. Keep showing up."
	default:
		return opener + "The season is in its final stretch. Every race matters now, every place counts. This is where seasons are defined."
	}
}

func tourImplications(in RecapInput) string {
	gcPos, gcGap := 0, 0.0
	if in.GC != nil {
		gcPos, gcGap = in.GC.Position, in.GC.GapToLeader
	}
	switch in.StageNumber {
	case 1:
		if gcPos >= 1 && gcPos <= 3 {
			lead := "in the leader's jersey"
			if gcPos > 1 {
				lead = fmt.Sprintf("%d%s overall", gcPos, ordinal(gcPos))
			}
			return "After Stage 1 you're " + lead + ". Two stages remain, the classification is tight, and every second counts. Defend or attack: your choice."
		}
		if gcPos > 0 {
			return fmt.Sprintf("Stage 1 complete, but you're %d%s overall, %s behind the lead. A real gap, but two stages remain and everything can change.", gcPos, ordinal(gcPos), gapText(gcGap))
		}
		return "Stage 1 complete. Two stages remain and the overall classification is still wide open."
	case 2:
		if gcPos >= 1 && gcPos <= 3 {
			return "Two stages down, one to go, and you're right in the overall fight. Tomorrow's queen stage decides everything: the hardest climbing of the tour on the most tired legs."
		}
		return "Two stages down, one to go. The overall is probably out of reach, but the queen stage is still a chance for a strong finish. Pride and points remain on the line."
	default:
		switch {
		case gcPos == 1:
			return "Tour champion. Three stages, every attack covered, and the leader's jersey held to the line. Multi-day racing demands consistency, strength and efficient suffering, and the overall is yours. With that, the season is complete."
		case gcPos >= 2 && gcPos <= 3:
			return fmt.Sprintf("The tour is complete: %d%s overall, %s behind the winner. A stage-race podium is a real achievement even when the top step stays out of reach. The season ends here, and you earned the finish.", gcPos, ordinal(gcPos), gapText(gcGap))
		case gcPos > 3:
			return fmt.Sprintf("The tour is finished. %d%s overall isn't where you hoped to be, but you completed all three stages and learned what multi-day racing demands. The season is over; the experience stays.", gcPos, ordinal(gcPos))
		default:
			return "The tour is finished and with it the season. Three stages of racing on accumulating fatigue, and you reached the end. The experience stays."
		}
	}
}

func nextRacePhrase(in RecapInput) string {
	if in.NextEvent != "" {
		return in.NextEvent + " comes next."
	}
	return "The next start line is waiting."
}

func podiumStreak(recent []int) bool {
	if len(recent) < 2 {
		return false
	}
	for _, p := range recent {
		if p < 1 || p > 3 {
			return false
		}
	}
	return true
}

func recentGood(recent []int) int {
	n := 0
	for _, p := range recent {
		if p >= 1 && p <= 10 {
			n++
		}
	}
	return n
}

func gapText(seconds float64) string {
	if seconds < 1 {
		return "less than a second"
	}
	if seconds < 60 {
		return fmt.Sprintf("%.0f seconds", seconds)
	}
	m := int(seconds) / 60
	s := int(seconds) % 60
	if s == 0 {
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return "th"
	case n%10 == 1:
		return "st"
	case n%10 == 2:
		return "nd"
	case n%10 == 3:
		return "rd"
	default:
		return "th"
	}
}
