package progression_test

import (
	"errors"
	"testing"

	"github.com/veloforge/paceline/internal/domain/model"
	progression "github.com/veloforge/paceline/internal/domain/progression"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidate(t *testing.T) {
	Convey("Given a rider at the first stage", t, func() {
		r := model.NewRider("u1", "Alex")

		Convey("The opening event is accepted", func() {
			d := progression.Validate(r, 1)
			So(d.Accepted, ShouldBeTrue)
			So(d.IsTour, ShouldBeFalse)
		})

		Convey("Any other season event is rejected", func() {
			d := progression.Validate(r, 2)
			So(d.Accepted, ShouldBeFalse)
			So(errors.Is(d.Reason, progression.ErrWrongEvent), ShouldBeTrue)
		})

		Convey("Special events are accepted without advancing", func() {
			d := progression.Validate(r, 102)
			So(d.Accepted, ShouldBeTrue)
			So(d.IsSpecial, ShouldBeTrue)
			progression.Advance(r, d, 102)
			So(r.CurrentStage, ShouldEqual, 1)
		})
	})

	Convey("Given a rider at a choice stage", t, func() {
		r := model.NewRider("u1", "Alex")
		r.CurrentStage = 3

		Convey("Any pool event is accepted once", func() {
			d := progression.Validate(r, 8)
			So(d.Accepted, ShouldBeTrue)
			progression.Advance(r, d, 8)
			So(r.CurrentStage, ShouldEqual, 4)
			So(r.UsedChoice(8), ShouldBeTrue)
		})

		Convey("A consumed pool event is rejected at the next choice stage", func() {
			r.UsedChoices = []int{8}
			r.CurrentStage = 6
			d := progression.Validate(r, 8)
			So(d.Accepted, ShouldBeFalse)
			So(errors.Is(d.Reason, progression.ErrChoiceUsed), ShouldBeTrue)
		})

		Convey("Events outside the pool are rejected", func() {
			d := progression.Validate(r, 5)
			So(errors.Is(d.Reason, progression.ErrWrongEvent), ShouldBeTrue)
		})
	})

	Convey("Given a rider on the tour stage", t, func() {
		r := model.NewRider("u1", "Alex")
		r.CurrentStage = 9

		Convey("Tour stages validate strictly in order", func() {
			d := progression.Validate(r, 14)
			So(errors.Is(d.Reason, progression.ErrTourOrder), ShouldBeTrue)

			d = progression.Validate(r, 13)
			So(d.Accepted, ShouldBeTrue)
			So(d.IsTour, ShouldBeTrue)
			progression.Advance(r, d, 13)
			So(r.CurrentStage, ShouldEqual, 9)
			So(r.SeasonComplete, ShouldBeFalse)
		})

		Convey("Completing the final tour stage finishes the season", func() {
			for _, n := range []int{13, 14, 15} {
				d := progression.Validate(r, n)
				So(d.Accepted, ShouldBeTrue)
				progression.Advance(r, d, n)
			}
			So(r.CurrentStage, ShouldEqual, 9)
			So(r.SeasonComplete, ShouldBeTrue)

			Convey("And further tour results are rejected", func() {
				d := progression.Validate(r, 13)
				So(errors.Is(d.Reason, progression.ErrTourComplete), ShouldBeTrue)
			})
		})
	})
}
