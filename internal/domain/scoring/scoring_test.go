package scoring_test

import (
	"testing"

	"github.com/veloforge/paceline/internal/domain/model"
	scoring "github.com/veloforge/paceline/internal/domain/scoring"
	"github.com/veloforge/paceline/internal/domain/season"
	. "github.com/smartystreets/goconvey/convey"
)

func event(n int) season.Event {
	ev, ok := season.Lookup(n)
	if !ok {
		panic("unknown event in test")
	}
	return ev
}

func TestPoints(t *testing.T) {
	Convey("Given the standard scoring curve", t, func() {
		Convey("A winner with no prediction scores exactly max points", func() {
			for _, n := range []int{1, 2, 5, 8, 12, 15} {
				b := scoring.Points(event(n), 1, 0)
				So(b.Total, ShouldEqual, event(n).MaxPoints)
			}
		})

		Convey("Points decrease monotonically with position", func() {
			ev := event(2)
			prev := scoring.Points(ev, 1, 0).Total
			for pos := 2; pos <= 40; pos++ {
				cur := scoring.Points(ev, pos, 0).Total
				So(cur, ShouldBeLessThanOrEqualTo, prev)
				prev = cur
			}
		})

		Convey("Positions beyond 40 score zero", func() {
			So(scoring.Points(event(2), 41, 0).Total, ShouldEqual, 0)
		})

		Convey("DNF scores zero", func() {
			So(scoring.Points(event(2), 0, 0).Total, ShouldEqual, 0)
		})
	})

	Convey("Given the elimination curve", t, func() {
		ev := event(3)

		Convey("The winner scores 45 base plus podium bonus", func() {
			So(scoring.Points(ev, 1, 0).Total, ShouldEqual, 50)
		})

		Convey("Position 20 scores the floor of the curve", func() {
			b := scoring.Points(ev, 20, 0)
			So(b.Total, ShouldEqual, 10)
		})

		Convey("Position 21 scores zero", func() {
			So(scoring.Points(ev, 21, 0).Total, ShouldEqual, 0)
		})
	})
}

func TestPredictionBonus(t *testing.T) {
	Convey("Given the stepped prediction bonus", t, func() {
		cases := []struct {
			position, predicted, want int
		}{
			{1, 10, 5},
			{3, 10, 4},
			{5, 10, 3},
			{7, 10, 2},
			{9, 10, 1},
			{10, 10, 0},
			{15, 10, 0},
			{5, 0, 0},
		}
		for _, c := range cases {
			So(scoring.PredictionBonus(c.position, c.predicted), ShouldEqual, c.want)
		}
	})
}

func TestPredictedPosition(t *testing.T) {
	Convey("Given a field with mixed ratings", t, func() {
		rows := []model.Row{
			{ParticipantID: "a", Position: 3, Rating: 1200},
			{ParticipantID: "b", Position: 1, Rating: 1400},
			{ParticipantID: "c", Position: 2, Rating: 0},
			{ParticipantID: "d", Position: 4, Rating: 900},
		}

		Convey("Participants are ranked descending by rating", func() {
			So(scoring.PredictedPosition(rows, "b"), ShouldEqual, 1)
			So(scoring.PredictedPosition(rows, "a"), ShouldEqual, 2)
			So(scoring.PredictedPosition(rows, "d"), ShouldEqual, 3)
		})

		Convey("A zero rating yields no prediction", func() {
			So(scoring.PredictedPosition(rows, "c"), ShouldEqual, 0)
		})

		Convey("An unknown participant yields no prediction", func() {
			So(scoring.PredictedPosition(rows, "zz"), ShouldEqual, 0)
		})
	})
}
