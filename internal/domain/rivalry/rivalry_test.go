package rivalry_test

import (
	"testing"

	"github.com/veloforge/paceline/internal/domain/model"
	rivalry "github.com/veloforge/paceline/internal/domain/rivalry"
	"github.com/veloforge/paceline/internal/domain/season"
	. "github.com/smartystreets/goconvey/convey"
)

func ev(n int) season.Event {
	e, _ := season.Lookup(n)
	return e
}

func TestDetect(t *testing.T) {
	rider := model.Row{ParticipantID: "u1", Position: 5, Time: 1800, Distance: 14900}
	rows := []model.Row{
		rider,
		{ParticipantID: "b1", Position: 4, Time: 1790, Bot: true},
		{ParticipantID: "b2", Position: 6, Time: 1825, Bot: true},
		{ParticipantID: "b3", Position: 20, Time: 1900, Bot: true},
		{ParticipantID: "h1", Position: 7, Time: 1805}, // human, ignored
		{ParticipantID: "b4", DNF: true, Bot: true},
	}

	Convey("Given a time-scored event", t, func() {
		encs := rivalry.Detect(ev(2), rows, rider)

		Convey("Only bots within thirty seconds count", func() {
			So(len(encs), ShouldEqual, 2)
			So(encs[0].Opponent.ParticipantID, ShouldEqual, "b1")
			So(encs[0].TimeGap, ShouldAlmostEqual, 10)
			So(encs[0].Ahead, ShouldBeFalse)
			So(encs[1].Ahead, ShouldBeTrue)
			So(encs[1].Meaningful, ShouldBeTrue)
		})
	})

	Convey("Given the elimination event", t, func() {
		So(rivalry.Detect(ev(3), rows, rider), ShouldBeEmpty)
	})

	Convey("Given the fixed-duration event", t, func() {
		rows := []model.Row{
			rider,
			{ParticipantID: "b1", Position: 4, Distance: 15100, Bot: true},
			{ParticipantID: "b2", Position: 9, Distance: 16000, Bot: true},
		}
		encs := rivalry.Detect(ev(4), rows, rider)

		Convey("Proximity is measured in distance and gaps are not meaningful", func() {
			So(len(encs), ShouldEqual, 1)
			So(encs[0].DistanceGap, ShouldAlmostEqual, 200)
			So(encs[0].Meaningful, ShouldBeFalse)
		})
	})

	Convey("Given a rider DNF", t, func() {
		So(rivalry.Detect(ev(2), rows, model.Row{ParticipantID: "u1", DNF: true}), ShouldBeEmpty)
	})
}

func TestUpdate(t *testing.T) {
	Convey("Given an empty rivalry table", t, func() {
		var data model.RivalData
		enc := rivalry.Encounter{
			Opponent:   model.Row{ParticipantID: "b1", Name: "Bot One", Bot: true},
			TimeGap:    10,
			Ahead:      true,
			Meaningful: true,
		}

		rivalry.Update(&data, []rivalry.Encounter{enc}, 2)
		entry := data.Encounters["b1"]

		Convey("The first encounter seeds the entry", func() {
			So(entry.Races, ShouldEqual, 1)
			So(entry.Wins, ShouldEqual, 1)
			So(entry.AvgGap(), ShouldAlmostEqual, 10)
			So(entry.ClosestGap, ShouldAlmostEqual, 10)
			So(entry.LastEvent, ShouldEqual, 2)
		})

		Convey("A later event accumulates", func() {
			enc.TimeGap = 4
			enc.Ahead = false
			rivalry.Update(&data, []rivalry.Encounter{enc}, 5)
			So(entry.Races, ShouldEqual, 2)
			So(entry.Losses, ShouldEqual, 1)
			So(entry.AvgGap(), ShouldAlmostEqual, 7)
			So(entry.ClosestGap, ShouldAlmostEqual, 4)
		})

		Convey("Reprocessing the same event replaces the gap contribution", func() {
			enc.TimeGap = 20
			rivalry.Update(&data, []rivalry.Encounter{enc}, 2)
			So(entry.Races, ShouldEqual, 1)
			So(entry.AvgGap(), ShouldAlmostEqual, 20)
		})
	})
}

func TestTopRivals(t *testing.T) {
	Convey("Given a populated table", t, func() {
		data := model.RivalData{Encounters: map[string]*model.RivalryEntry{
			// Even record over many close races: the strongest rivalry.
			"close": {Races: 4, Wins: 2, Losses: 2, TotalGap: 8, GapRaces: 4},
			// One-sided and distant.
			"weak": {Races: 2, Wins: 2, TotalGap: 50, GapRaces: 2},
			// Distance-only encounters carry no meaningful gap.
			"nogap": {Races: 6, Wins: 3, Losses: 3},
		}}

		top := rivalry.TopRivals(&data)

		Convey("Ranking favors frequent, close, competitive rivals", func() {
			So(top[0], ShouldEqual, "close")
		})

		Convey("Zero-gap entries are excluded", func() {
			So(top, ShouldNotContain, "nogap")
			So(len(top), ShouldEqual, 2)
		})

		Convey("An even record outranks the same races one-sided", func() {
			even := &model.RivalryEntry{Races: 4, Wins: 2, Losses: 2, TotalGap: 8, GapRaces: 4}
			oneSided := &model.RivalryEntry{Races: 4, Wins: 4, TotalGap: 8, GapRaces: 4}
			So(rivalry.Score(even), ShouldBeGreaterThan, rivalry.Score(oneSided))
		})
	})
}
