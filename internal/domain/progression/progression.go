// Package progression validates event results against the rider's stage
// sequence and advances it.
package progression

import (
	"errors"
	"fmt"

	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/internal/domain/season"
)

var (
	// ErrUnknownStage means the rider's stage index has no requirement.
	ErrUnknownStage = errors.New("progression: unknown stage")
	// ErrWrongEvent means the event does not satisfy the current stage.
	ErrWrongEvent = errors.New("progression: event not valid for stage")
	// ErrChoiceUsed means a one-time choice event was already consumed.
	ErrChoiceUsed = errors.New("progression: choice event already used")
	// ErrTourOrder means a tour stage was raced out of sequence.
	ErrTourOrder = errors.New("progression: tour event out of order")
	// ErrTourComplete means the tour has no stages left.
	ErrTourComplete = errors.New("progression: tour already completed")
)

// Decision is the outcome of validating an event against rider state.
type Decision struct {
	Accepted  bool
	Reason    error // nil when accepted
	IsTour    bool
	IsSpecial bool
}

// Validate checks whether the rider may record a result for the event.
// Rejections are reported, never fatal; the caller logs and skips.
func Validate(r *model.Rider, eventNumber int) Decision {
	if season.IsSpecial(eventNumber) {
		return Decision{Accepted: true, IsSpecial: true}
	}

	stage, ok := season.Requirement(r.CurrentStage)
	if !ok {
		return Decision{Reason: fmt.Errorf("%w: %d", ErrUnknownStage, r.CurrentStage)}
	}

	switch stage.Kind {
	case season.StageFixed:
		if eventNumber != stage.EventID {
			return Decision{Reason: fmt.Errorf("%w: stage %d requires event %d, got %d",
				ErrWrongEvent, stage.Index, stage.EventID, eventNumber)}
		}
		return Decision{Accepted: true}

	case season.StageChoice:
		if !containsInt(stage.Choices, eventNumber) {
			return Decision{Reason: fmt.Errorf("%w: event %d not in stage %d pool",
				ErrWrongEvent, eventNumber, stage.Index)}
		}
		if r.UsedChoice(eventNumber) {
			return Decision{Reason: fmt.Errorf("%w: event %d", ErrChoiceUsed, eventNumber)}
		}
		return Decision{Accepted: true}

	case season.StageTour:
		if !containsInt(stage.Tour, eventNumber) {
			return Decision{Reason: fmt.Errorf("%w: event %d not in the tour",
				ErrWrongEvent, eventNumber)}
		}
		next, ok := nextTourEvent(r)
		if !ok {
			return Decision{Reason: ErrTourComplete}
		}
		if eventNumber != next {
			return Decision{Reason: fmt.Errorf("%w: expected event %d, got %d",
				ErrTourOrder, next, eventNumber)}
		}
		return Decision{Accepted: true, IsTour: true}
	}
	return Decision{Reason: fmt.Errorf("%w: %d", ErrUnknownStage, r.CurrentStage)}
}

// Advance mutates rider state after an accepted result: consumes choice
// events, marks tour progress, and moves the stage index. Special events
// leave progression untouched. The final stage is absorbing; completing the
// whole tour sets the season-complete flag instead of advancing.
func Advance(r *model.Rider, d Decision, eventNumber int) {
	if d.IsSpecial {
		return
	}
	if containsInt(season.ChoicePool(), eventNumber) && !r.UsedChoice(eventNumber) {
		r.UsedChoices = append(r.UsedChoices, eventNumber)
	}
	if d.IsTour {
		r.Tour.Mark(eventNumber)
	}
	if r.CurrentStage < season.FinalStage {
		r.CurrentStage++
		return
	}
	if _, ok := nextTourEvent(r); !ok {
		r.SeasonComplete = true
	}
}

func nextTourEvent(r *model.Rider) (int, bool) {
	for _, n := range season.TourEvents() {
		if !r.Tour.Done(n) {
			return n, true
		}
	}
	return 0, false
}

func containsInt(xs []int, n int) bool {
	for _, x := range xs {
		if x == n {
			return true
		}
	}
	return false
}
