// Package service runs the per-rider result pipeline: scoring, progression,
// classification, rivalry, triggers, standings, and narrative, ending in a
// single persistence write per rider.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veloforge/paceline/internal/adapters/repository"
	"github.com/veloforge/paceline/internal/domain/classification"
	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/narrative"
	"github.com/veloforge/paceline/internal/domain/progression"
	"github.com/veloforge/paceline/internal/domain/rivalry"
	"github.com/veloforge/paceline/internal/domain/scoring"
	"github.com/veloforge/paceline/internal/domain/season"
	"github.com/veloforge/paceline/internal/domain/standings"
	"github.com/veloforge/paceline/internal/domain/trigger"
	"github.com/veloforge/paceline/pkg/logger"
	"github.com/veloforge/paceline/pkg/metrics"
)

// ErrUnknownEvent means the uploaded event number is not in the catalog.
var ErrUnknownEvent = errors.New("service: unknown event")

// Skip reasons reported on the results_skipped counter.
const (
	skipProgression = "progression"
	skipDuplicate   = "duplicate"
	skipNoRow       = "empty_row"
)

// awards that pay out once per career.
var oneTimeAwards = map[string]bool{
	scoring.AwardEqualizer:  true,
	scoring.AwardZeroToHero: true,
	"overrated":             true,
	"technicalIssues":       true,
}

// Service implements the result-processing pipeline over a career store.
type Service struct {
	store    repository.Store
	selector *narrative.Selector
	logger   logger.Logger
	metrics  *metrics.Manager

	season    int
	botLimit  int
	botRating int
	now       func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSelector sets a custom narrative selector.
func WithSelector(sel *narrative.Selector) Option {
	return func(s *Service) {
		if sel != nil {
			s.selector = sel
		}
	}
}

// WithSeason sets the season number used for standings and snapshot keys.
func WithSeason(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.season = n
		}
	}
}

// WithBotLimit caps the number of bot entries kept in the season standings.
func WithBotLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.botLimit = n
		}
	}
}

// WithDefaultBotRating sets the rating assumed for bots with no recorded one.
func WithDefaultBotRating(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.botRating = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service over the given store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		selector: narrative.NewSelector(),
		season:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// BatchReport summarizes one ProcessBatch call.
type BatchReport struct {
	EventNumber int
	Processed   int
	Skipped     int
	Failed      int
}

// ProcessBatch ingests one event's normalized result rows. Every non-bot row
// is run through the full pipeline sequentially; a failure is fatal to that
// rider only. The shared per-event snapshot is written before any rider so
// later pipeline reads see this event.
func (s *Service) ProcessBatch(ctx context.Context, eventNumber int, rows []model.Row) (BatchReport, error) {
	report := BatchReport{EventNumber: eventNumber}

	ev, ok := season.Lookup(eventNumber)
	if !ok {
		return report, fmt.Errorf("%w: %d", ErrUnknownEvent, eventNumber)
	}

	snap := &model.ResultsSnapshot{
		SnapshotID:  uuid.NewString(),
		Season:      s.season,
		EventNumber: eventNumber,
		Rows:        rows,
		StoredAt:    s.now(),
	}
	if err := s.store.PutSnapshot(ctx, snap); err != nil {
		s.metrics.PersistenceError()
		return report, fmt.Errorf("storing snapshot for event %d: %w", eventNumber, err)
	}

	for _, row := range rows {
		if row.Bot {
			continue
		}
		if row.ParticipantID == "" {
			s.metrics.ResultSkipped(skipNoRow)
			report.Skipped++
			continue
		}

		outcome, err := s.processRider(ctx, ev, rows, row)
		switch {
		case err != nil:
			report.Failed++
			s.logger.Error(ctx, "rider processing failed",
				logger.String("riderID", row.ParticipantID),
				logger.Int("event", eventNumber),
				logger.Error(err),
			)
		case outcome == outcomeSkipped:
			report.Skipped++
		default:
			report.Processed++
		}
	}

	s.logger.Info(ctx, "batch processed",
		logger.Int("event", eventNumber),
		logger.Int("processed", report.Processed),
		logger.Int("skipped", report.Skipped),
		logger.Int("failed", report.Failed),
	)
	return report, nil
}

type riderOutcome int

const (
	outcomeProcessed riderOutcome = iota
	outcomeSkipped
)

// processRider runs the full pipeline for one tracked rider row.
func (s *Service) processRider(ctx context.Context, ev season.Event, rows []model.Row, row model.Row) (riderOutcome, error) {
	start := s.now()

	rider, err := s.store.Rider(ctx, row.ParticipantID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		rider = model.NewRider(row.ParticipantID, row.Name)
	case err != nil:
		return outcomeSkipped, fmt.Errorf("loading rider: %w", err)
	}

	prev := rider.Result(ev.Number)
	if prev != nil && prev.Position == row.Position && prev.DNF == row.DNF {
		s.logger.Debug(ctx, "result already processed",
			logger.String("riderID", rider.ID),
			logger.Int("event", ev.Number),
		)
		s.metrics.ResultSkipped(skipDuplicate)
		return outcomeSkipped, nil
	}

	// A stored result with a changed position is a correction upload: the
	// event was accepted once, so progression is not re-validated and not
	// re-advanced. Fresh results validate against the stage sequence.
	correction := prev != nil
	decision := progression.Decision{
		Accepted:  true,
		IsSpecial: season.IsSpecial(ev.Number),
		IsTour:    rider.Tour.Done(ev.Number),
	}
	if !correction {
		decision = progression.Validate(rider, ev.Number)
		if !decision.Accepted {
			s.logger.Info(ctx, "result rejected by stage progression",
				logger.String("riderID", rider.ID),
				logger.Int("event", ev.Number),
				logger.Int("stage", rider.CurrentStage),
				logger.Error(decision.Reason),
			)
			s.metrics.ResultSkipped(skipProgression)
			return outcomeSkipped, nil
		}
	}
	if correction {
		s.retract(rider, prev)
	}

	predicted := scoring.PredictedPosition(rows, row.ParticipantID)
	breakdown := scoring.Points(ev, row.Position, predicted)

	prevPos, prevField := s.previousOuting(rider)
	earned := scoring.Evaluate(scoring.AwardInput{
		Event:          ev,
		Rows:           rows,
		Row:            row,
		Predicted:      predicted,
		PrevPosition:   prevPos,
		PrevFieldSize:  prevField,
		PriorBeats:     rider.Lifetime.ConsecutiveBeat,
		PriorPositions: s.priorPositions(rider),
		PriorWorse:     rider.Lifetime.WorseThanPredicted,
		PriorDNFs:      rider.Lifetime.TotalDNFs,
	})
	earned = s.filterOneTime(rider, earned)

	result := &model.EventResult{
		EventNumber:       ev.Number,
		StageIndex:        rider.CurrentStage,
		Position:          row.Position,
		DNF:               row.DNF,
		Time:              row.Time,
		Distance:          row.Distance,
		Rating:            row.Rating,
		PredictedPosition: predicted,
		Points:            breakdown.Total,
		ProcessedAt:       s.now(),
	}

	if decision.IsTour {
		gc, gcAwards, gcBonus, err := s.simulateGC(ctx, rider, ev, rows, row)
		if err != nil {
			return outcomeSkipped, err
		}
		result.GC = gc
		result.BonusPoints = gcBonus
		earned = append(earned, gcAwards...)
	}

	encounters := rivalry.Detect(ev, rows, row)
	rivalry.Update(&rider.Rivals, encounters, ev.Number)
	rider.Rivals.TopRivals = rivalry.TopRivals(&rider.Rivals)

	if row.Finished() && !decision.IsSpecial {
		applied := trigger.Evaluate(&rider.Triggers, s.triggerContext(ev, rows, row, rider, predicted))
		for _, a := range applied {
			result.TriggerBonus += a.Points
			result.TriggersApplied = append(result.TriggersApplied, a.AppliedTrigger)
			s.adjustTraits(rider, a.TraitBonus)
			s.metrics.TriggerApplied()
		}
	}

	result.Awards = earned
	result.CreditsEarned = scoring.Credits(earned, row.Finished())
	for _, id := range earned {
		s.metrics.AwardEarned(id)
	}

	s.applyResult(rider, result)
	s.updateLifetime(rider, ev, rows, row, predicted)
	if !correction {
		progression.Advance(rider, decision, ev.Number)
	}

	if err := s.rebuildStandings(ctx, rider, ev.Number, rows); err != nil {
		return outcomeSkipped, err
	}

	recap, err := s.composeRecap(ctx, rider, ev, rows, row, result, encounters)
	if err != nil {
		return outcomeSkipped, err
	}
	result.Recap = recap

	if err := s.store.PutRider(ctx, rider); err != nil {
		s.metrics.PersistenceError()
		return outcomeSkipped, fmt.Errorf("persisting rider %s: %w", rider.ID, err)
	}

	s.metrics.RiderProcessed(s.now().Sub(start))
	s.logger.Info(ctx, "rider result processed",
		logger.String("riderID", rider.ID),
		logger.Int("event", ev.Number),
		logger.Int("position", row.Position),
		logger.Int("points", result.Points+result.BonusPoints+result.TriggerBonus),
		logger.Int("awards", len(result.Awards)),
	)
	return outcomeProcessed, nil
}

// retract removes a previously stored result's contribution to the career
// aggregates ahead of a correction upload.
func (s *Service) retract(r *model.Rider, prev *model.EventResult) {
	r.TotalPoints -= prev.Points + prev.BonusPoints + prev.TriggerBonus
	r.TotalEvents--
	if prev.Position == 1 {
		r.TotalWins--
	}
	if prev.Position >= 1 && prev.Position <= 3 {
		r.TotalPodiums--
	}
	r.Credits -= prev.CreditsEarned
	for _, id := range prev.Awards {
		if r.AwardCounts[id] > 0 {
			r.AwardCounts[id]--
		}
	}
	delete(r.Results, prev.EventNumber)
}

// applyResult folds the finished result into the career aggregates and
// stores it on the rider.
func (s *Service) applyResult(r *model.Rider, res *model.EventResult) {
	r.TotalPoints += res.Points + res.BonusPoints + res.TriggerBonus
	r.TotalEvents++
	if res.Position == 1 {
		r.TotalWins++
	}
	if res.Position >= 1 && res.Position <= 3 {
		r.TotalPodiums++
	}
	r.Credits += res.CreditsEarned
	if len(res.Awards) > 0 && r.AwardCounts == nil {
		r.AwardCounts = make(map[string]int)
	}
	for _, id := range res.Awards {
		r.AwardCounts[id]++
	}
	if r.Results == nil {
		r.Results = make(map[int]*model.EventResult)
	}
	r.Results[res.EventNumber] = res
}

// filterOneTime drops awards already earned once per career and records the
// newly earned ones.
func (s *Service) filterOneTime(r *model.Rider, earned []string) []string {
	out := earned[:0]
	for _, id := range earned {
		if !oneTimeAwards[id] {
			out = append(out, id)
			continue
		}
		if containsString(r.Lifetime.OneTimeAwards, id) {
			continue
		}
		r.Lifetime.OneTimeAwards = append(r.Lifetime.OneTimeAwards, id)
		out = append(out, id)
	}
	return out
}

// priorPositions lists the rider's finishing positions for every stored
// result in event order, DNFs as zero.
func (s *Service) priorPositions(r *model.Rider) []int {
	events := r.CompletedEvents()
	out := make([]int, 0, len(events))
	for _, n := range events {
		if res := r.Results[n]; res != nil {
			out = append(out, res.Position)
		}
	}
	return out
}

// previousOuting returns the position of the rider's most recent classified
// finish. The field size is left zero; award predicates fall back to a
// nominal field when it is unknown.
func (s *Service) previousOuting(r *model.Rider) (position, fieldSize int) {
	events := r.CompletedEvents()
	for i := len(events) - 1; i >= 0; i-- {
		res := r.Results[events[i]]
		if res == nil || res.DNF || res.Position == 0 {
			continue
		}
		return res.Position, 0
	}
	return 0, 0
}

// simulateGC runs the general classification over the tour stages raced so
// far, including the in-flight one.
func (s *Service) simulateGC(ctx context.Context, r *model.Rider, ev season.Event, rows []model.Row, row model.Row) (*model.GCSummary, []string, int, error) {
	var stages []int
	results := make(map[int][]model.Row)
	for _, n := range season.TourEvents() {
		switch {
		case n == ev.Number:
			stages = append(stages, n)
			results[n] = rows
		case r.Tour.Done(n):
			stages = append(stages, n)
			snap, err := s.store.Snapshot(ctx, s.season, n)
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, nil, 0, fmt.Errorf("loading stage %d snapshot: %w", n, err)
			}
			results[n] = snap.Rows
		}
	}

	out := classification.Simulate(classification.Input{
		Stages:    stages,
		Results:   results,
		TrackedID: row.ParticipantID,
	})
	for i := 0; i < out.Synthesized; i++ {
		s.metrics.StageTimeSynthesized()
	}
	if out.Tracked == nil {
		return nil, nil, 0, nil
	}
	gc := &model.GCSummary{
		Position:       out.Tracked.Rank,
		CumulativeTime: out.Tracked.CumulativeTime,
		GapToLeader:    out.Tracked.GapToLeader,
		StagesIncluded: len(stages),
		Provisional:    out.Provisional,
		BonusPoints:    out.BonusPoints,
	}
	return gc, out.Awards, out.BonusPoints, nil
}

// triggerContext assembles the race snapshot trigger predicates inspect.
func (s *Service) triggerContext(ev season.Event, rows []model.Row, row model.Row, r *model.Rider, predicted int) trigger.Context {
	winMargin, lossMargin := margins(ev, rows, row)
	margin := lossMargin
	if row.Position == 1 {
		margin = winMargin
	}

	finishers := make([]model.Row, 0, len(rows))
	for _, rr := range rows {
		if rr.Finished() {
			finishers = append(finishers, rr)
		}
	}

	return trigger.Context{
		Position:       row.Position,
		Predicted:      predicted,
		MarginToWinner: margin,
		GapToWinner:    lossMargin,
		Category:       ev.Category,
		EventNumber:    ev.Number,
		Rating:         row.Rating,
		Rows:           finishers,
		TopRivals:      r.Rivals.TopRivals,
		Trait:          r.Trait,
	}
}

// adjustTraits applies one-time trait adjustments from an applied trigger,
// clamped to the 0..100 scale.
func (s *Service) adjustTraits(r *model.Rider, bonus map[string]int) {
	if len(bonus) == 0 {
		return
	}
	if r.Traits == nil {
		r.Traits = make(map[string]int)
	}
	for name, delta := range bonus {
		v := r.Trait(name) + delta
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		r.Traits[name] = v
	}
}

// updateLifetime folds the result into the career-long statistics and
// records.
func (s *Service) updateLifetime(r *model.Rider, ev season.Event, rows []model.Row, row model.Row, predicted int) {
	lt := &r.Lifetime

	if row.Distance > 0 {
		lt.TotalDistanceKm += row.Distance / 1000
	} else if row.Finished() {
		lt.TotalDistanceKm += ev.DistanceKm
	}
	if row.Finished() {
		lt.TotalClimbingM += ev.ClimbingM
	}
	lt.TotalRaceTime += row.Time

	if row.DNF {
		lt.TotalDNFs++
		lt.ConsecutiveBeat = 0
		return
	}

	if predicted > 0 && row.Position < predicted {
		lt.ConsecutiveBeat++
	} else {
		lt.ConsecutiveBeat = 0
	}
	if predicted > 0 && row.Position > predicted {
		lt.WorseThanPredicted++
	}

	now := s.now()
	if row.Rating > 0 && better(lt.HighestRating, float64(row.Rating)) {
		lt.HighestRating = recordRef(ev, float64(row.Rating), "", now)
	}
	if predicted > 0 && row.Position < predicted {
		beaten := float64(predicted - row.Position)
		if better(lt.BestVsPrediction, beaten) {
			lt.BestVsPrediction = recordRef(ev, beaten,
				fmt.Sprintf("predicted %s, finished %s", ordinalOf(predicted), ordinalOf(row.Position)), now)
		}
	}
	if giant := biggestBeaten(rows, row); giant > 0 && better(lt.BiggestGiant, float64(giant)) {
		lt.BiggestGiant = recordRef(ev, float64(giant), "highest-rated starter beaten", now)
	}
	if row.Position == 1 && ev.Profile.TimeMeaningful {
		if win, _ := margins(ev, rows, row); win > 0 && better(lt.BiggestWinMargin, win) {
			lt.BiggestWinMargin = recordRef(ev, win, "margin over second place", now)
		}
	}
}

func better(ref *model.RecordRef, v float64) bool {
	return ref == nil || v > ref.Value
}

func recordRef(ev season.Event, v float64, detail string, at time.Time) *model.RecordRef {
	return &model.RecordRef{
		EventNumber: ev.Number,
		EventName:   ev.Name,
		Value:       v,
		Detail:      detail,
		SetAt:       at,
	}
}

// biggestBeaten returns the highest rating among finishers the rider placed
// ahead of, 0 when none.
func biggestBeaten(rows []model.Row, row model.Row) int {
	if !row.Finished() {
		return 0
	}
	best := 0
	for _, r := range rows {
		if !r.Finished() || r.ParticipantID == row.ParticipantID {
			continue
		}
		if r.Position > row.Position && r.Rating > best {
			best = r.Rating
		}
	}
	return best
}

// rebuildStandings recomputes the season-points table across the rider's
// completed events and replaces the stored one.
func (s *Service) rebuildStandings(ctx context.Context, r *model.Rider, currentEvent int, rows []model.Row) error {
	events := r.CompletedEvents()
	results := make(map[int][]model.Row, len(events))
	for _, n := range events {
		if n == currentEvent {
			results[n] = rows
			continue
		}
		snap, err := s.store.Snapshot(ctx, s.season, n)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("loading event %d snapshot: %w", n, err)
		}
		results[n] = snap.Rows
	}

	table := standings.Build(standings.Input{
		RiderID:          r.ID,
		RiderName:        r.Name,
		Events:           events,
		Results:          results,
		MaxBots:          s.botLimit,
		DefaultBotRating: s.botRating,
	})
	if err := s.store.PutStandings(ctx, s.season, table.Standings); err != nil {
		s.metrics.PersistenceError()
		return fmt.Errorf("persisting standings: %w", err)
	}
	return nil
}

// composeRecap selects a story for this race, consumes it, and assembles the
// post-race recap text.
func (s *Service) composeRecap(ctx context.Context, r *model.Rider, ev season.Event, rows []model.Row, row model.Row, res *model.EventResult, encounters []rivalry.Encounter) (string, error) {
	used, err := s.store.StoriesUsed(ctx, r.ID)
	if err != nil {
		return "", fmt.Errorf("loading story history: %w", err)
	}

	recent := s.recentPositions(r, 5)
	stagesDone := r.CurrentStage - 1
	if r.SeasonComplete {
		stagesDone = season.FinalStage
	}

	nctx := narrative.Context{
		RiderID:      r.ID,
		EventNumber:  ev.Number,
		EventName:    ev.Name,
		Position:     row.Position,
		Predicted:    res.PredictedPosition,
		Races:        r.TotalEvents,
		StagesDone:   stagesDone,
		TotalPoints:  r.TotalPoints,
		TotalWins:    r.TotalWins,
		TotalPodiums: r.TotalPodiums,
		Recent:       recent,
		FirstWin:     row.Position == 1 && r.TotalWins == 1,
		Traits:       r.Trait,
		RivalIDs:     r.Rivals.TopRivals,
		RivalRaces:   s.topRivalRaces(r),
	}

	opening := ""
	if story, ok := s.selector.Select(nctx, used); ok {
		opening = narrative.Substitute(story.Text, nctx)
		if err := s.store.RecordStory(ctx, r.ID, model.StoryUsage{
			StoryID:     story.ID,
			EventNumber: ev.Number,
			UsedAt:      s.now(),
		}); err != nil {
			return "", fmt.Errorf("recording story usage: %w", err)
		}
		s.metrics.StorySelected(string(story.Category))
	}

	winMargin, lossMargin := margins(ev, rows, row)
	rivalName, rivalAhead := s.rivalInProximity(r, encounters)

	in := narrative.RecapInput{
		Event:       ev,
		Position:    row.Position,
		Predicted:   res.PredictedPosition,
		WinMargin:   winMargin,
		LossMargin:  lossMargin,
		Awards:      res.Awards,
		GC:          res.GC,
		StageNumber: tourStageNumber(ev.Number),
		Opening:     opening,
		StagesDone:  stagesDone,
		Races:       r.TotalEvents,
		Recent:      recent,
		NextEvent:   s.nextEventName(r),
		SeasonDone:  r.SeasonComplete,
		RivalName:   rivalName,
		RivalAhead:  rivalAhead,
	}
	return narrative.BuildRecap(in), nil
}

// recentPositions returns the rider's last n finishing positions in event
// order, oldest first. DNFs carry a zero.
func (s *Service) recentPositions(r *model.Rider, n int) []int {
	events := r.CompletedEvents()
	var out []int
	for _, num := range events {
		if res := r.Results[num]; res != nil {
			out = append(out, res.Position)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func (s *Service) topRivalRaces(r *model.Rider) int {
	if len(r.Rivals.TopRivals) == 0 || r.Rivals.Encounters == nil {
		return 0
	}
	if e := r.Rivals.Encounters[r.Rivals.TopRivals[0]]; e != nil {
		return e.Races
	}
	return 0
}

// rivalInProximity picks the tracked rival mentioned in the recap: the top
// ranked rival among this event's encounters. TopRivals carries participant
// ids; the opponent's display name is what the recap prints.
func (s *Service) rivalInProximity(r *model.Rider, encounters []rivalry.Encounter) (string, bool) {
	for _, id := range r.Rivals.TopRivals {
		for _, enc := range encounters {
			if enc.Opponent.ParticipantID == id {
				return enc.Opponent.Name, !enc.Ahead
			}
		}
	}
	return "", false
}

// nextEventName names the rider's next required event, "" for choice and
// tour stages or a completed season.
func (s *Service) nextEventName(r *model.Rider) string {
	if r.SeasonComplete {
		return ""
	}
	next := season.NextFixedEvent(r.CurrentStage)
	if next == 0 {
		return ""
	}
	if ev, ok := season.Lookup(next); ok {
		return ev.Name
	}
	return ""
}

// tourStageNumber maps a tour event to its 1-based stage number, 0 for
// everything else.
func tourStageNumber(eventNumber int) int {
	for i, n := range season.TourEvents() {
		if n == eventNumber {
			return i + 1
		}
	}
	return 0
}

// margins computes the winner's margin over second place and the rider's gap
// to the winner. Both are 0 when the event's times carry no ordering signal.
func margins(ev season.Event, rows []model.Row, row model.Row) (winMargin, lossMargin float64) {
	if !ev.Profile.TimeMeaningful || !row.Finished() {
		return 0, 0
	}
	var first, second float64
	for _, r := range rows {
		if !r.Finished() {
			continue
		}
		switch r.Position {
		case 1:
			first = r.Time
		case 2:
			second = r.Time
		}
	}
	if row.Position == 1 {
		if second > 0 && first > 0 {
			winMargin = second - first
		}
		return winMargin, 0
	}
	if first > 0 && row.Time > 0 {
		lossMargin = row.Time - first
	}
	return 0, lossMargin
}

func ordinalOf(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
