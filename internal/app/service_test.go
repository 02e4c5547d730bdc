package service_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/veloforge/paceline/internal/adapters/repository"
	service "github.com/veloforge/paceline/internal/app"
	"github.com/veloforge/paceline/internal/domain/model"
	"github.com/veloforge/paceline/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestService(t *testing.T) (*service.Service, repository.Store) {
	t.Helper()

	store, err := repository.Open(filepath.Join(t.TempDir(), "career.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return service.New(store), store
}

// raceRows builds a field of n finishers with the tracked rider at the given
// position. The winner finishes in 1800s with ten-second gaps down the order.
func raceRows(riderID string, riderPos, n int) []model.Row {
	rows := make([]model.Row, 0, n)
	for pos := 1; pos <= n; pos++ {
		row := model.Row{
			Position: pos,
			Time:     1800 + float64(pos-1)*10,
			Distance: 14900,
		}
		if pos == riderPos {
			row.ParticipantID = riderID
			row.Name = "Alex Reyes"
		} else {
			row.ParticipantID = fmt.Sprintf("bot-%d", pos)
			row.Name = fmt.Sprintf("R. Fillon %d", pos)
			row.Rating = 900 + pos*10
			row.Bot = true
		}
		rows = append(rows, row)
	}
	return rows
}

func TestProcessBatch_FirstEvent(t *testing.T) {
	Convey("Given a fresh rider winning the season opener", t, func() {
		svc, store := newTestService(t)
		ctx := context.Background()
		rows := raceRows("r1", 1, 10)

		report, err := svc.ProcessBatch(ctx, 1, rows)
		So(err, ShouldBeNil)
		So(report.Processed, ShouldEqual, 1)
		So(report.Skipped, ShouldEqual, 0)
		So(report.Failed, ShouldEqual, 0)

		rider, err := store.Rider(ctx, "r1")
		So(err, ShouldBeNil)

		Convey("Then the career record reflects the win", func() {
			So(rider.TotalEvents, ShouldEqual, 1)
			So(rider.TotalWins, ShouldEqual, 1)
			So(rider.TotalPodiums, ShouldEqual, 1)
			So(rider.CurrentStage, ShouldEqual, 2)
			So(rider.SeasonComplete, ShouldBeFalse)
		})

		Convey("Then a win with no prediction scores exactly the event maximum", func() {
			res := rider.Result(1)
			So(res, ShouldNotBeNil)
			So(res.PredictedPosition, ShouldEqual, 0)
			So(res.Points, ShouldEqual, 65)
			So(rider.TotalPoints, ShouldEqual, 65)
		})

		Convey("Then awards and credits are applied", func() {
			res := rider.Result(1)
			So(res.HasAward("goldMedal"), ShouldBeTrue)
			So(res.CreditsEarned, ShouldEqual, 50)
			So(rider.Credits, ShouldEqual, 50)
		})

		Convey("Then the recap is never empty", func() {
			So(rider.Result(1).Recap, ShouldNotBeEmpty)
		})

		Convey("Then close-finishing bots become rivals", func() {
			So(len(rider.Rivals.TopRivals), ShouldBeGreaterThan, 0)
		})

		Convey("Then the recap names the proximate rival by display name", func() {
			// Rival ids (bot-N) differ from display names; the recap must
			// carry the name, not the id.
			So(rider.Result(1).Recap, ShouldContainSubstring, "R. Fillon")
			So(rider.Result(1).Recap, ShouldNotContainSubstring, "bot-")
		})

		Convey("Then the season standings include the rider", func() {
			table, err := store.Standings(ctx, 1)
			So(err, ShouldBeNil)
			found := false
			for _, s := range table {
				if s.ParticipantID == "r1" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("Then the shared snapshot is persisted", func() {
			snap, err := store.Snapshot(ctx, 1, 1)
			So(err, ShouldBeNil)
			So(snap.SnapshotID, ShouldNotBeEmpty)
			So(len(snap.Rows), ShouldEqual, 10)
		})
	})
}

func TestProcessBatch_Idempotency(t *testing.T) {
	Convey("Given a rider whose result was already processed", t, func() {
		svc, store := newTestService(t)
		ctx := context.Background()
		rows := raceRows("r1", 1, 10)

		_, err := svc.ProcessBatch(ctx, 1, rows)
		So(err, ShouldBeNil)

		Convey("When the same upload arrives again", func() {
			report, err := svc.ProcessBatch(ctx, 1, rows)
			So(err, ShouldBeNil)

			Convey("Then it is a logged no-op", func() {
				So(report.Processed, ShouldEqual, 0)
				So(report.Skipped, ShouldEqual, 1)

				rider, err := store.Rider(ctx, "r1")
				So(err, ShouldBeNil)
				So(rider.TotalEvents, ShouldEqual, 1)
				So(rider.TotalPoints, ShouldEqual, 65)
			})
		})

		Convey("When a correction arrives with a different position", func() {
			corrected := raceRows("r1", 3, 10)
			report, err := svc.ProcessBatch(ctx, 1, corrected)
			So(err, ShouldBeNil)
			So(report.Processed, ShouldEqual, 1)

			Convey("Then the old contribution is replaced, not stacked", func() {
				rider, err := store.Rider(ctx, "r1")
				So(err, ShouldBeNil)
				So(rider.TotalEvents, ShouldEqual, 1)
				So(rider.TotalWins, ShouldEqual, 0)
				So(rider.TotalPodiums, ShouldEqual, 1)
				So(rider.Result(1).Position, ShouldEqual, 3)
				So(rider.CurrentStage, ShouldEqual, 2) // advanced once, not twice
			})
		})
	})
}

func TestProcessBatch_Progression(t *testing.T) {
	Convey("Given a fresh rider", t, func() {
		svc, store := newTestService(t)
		ctx := context.Background()

		Convey("When an event that does not match the first stage arrives", func() {
			report, err := svc.ProcessBatch(ctx, 5, raceRows("r1", 1, 10))
			So(err, ShouldBeNil)

			Convey("Then the result is skipped and no career record is created", func() {
				So(report.Skipped, ShouldEqual, 1)
				_, err := store.Rider(ctx, "r1")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a special event arrives", func() {
			report, err := svc.ProcessBatch(ctx, 101, raceRows("r1", 1, 10))
			So(err, ShouldBeNil)
			So(report.Processed, ShouldEqual, 1)

			Convey("Then it counts for the career but never advances the stage", func() {
				rider, err := store.Rider(ctx, "r1")
				So(err, ShouldBeNil)
				So(rider.TotalEvents, ShouldEqual, 1)
				So(rider.CurrentStage, ShouldEqual, 1)
				So(rider.Result(101).HasAward("singaporeSling"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unknown event number", t, func() {
		svc, _ := newTestService(t)

		_, err := svc.ProcessBatch(context.Background(), 999, raceRows("r1", 1, 10))

		Convey("Then the batch fails up front", func() {
			So(errors.Is(err, service.ErrUnknownEvent), ShouldBeTrue)
		})
	})

	Convey("Given a batch of only bot rows", t, func() {
		svc, _ := newTestService(t)

		rows := raceRows("r1", 1, 10)[1:] // drop the tracked rider
		report, err := svc.ProcessBatch(context.Background(), 1, rows)

		Convey("Then nothing is processed", func() {
			So(err, ShouldBeNil)
			So(report.Processed, ShouldEqual, 0)
		})
	})
}

func TestProcessBatch_StandingsLimits(t *testing.T) {
	Convey("Given a service configured with a tight bot limit", t, func() {
		store, err := repository.Open(filepath.Join(t.TempDir(), "career.db"))
		So(err, ShouldBeNil)
		defer func() { _ = store.Close() }()

		svc := service.New(store,
			service.WithBotLimit(5),
			service.WithDefaultBotRating(1200),
		)
		ctx := context.Background()

		_, err = svc.ProcessBatch(ctx, 1, raceRows("r1", 1, 10))
		So(err, ShouldBeNil)

		Convey("Then the published standings respect the limit", func() {
			table, err := store.Standings(ctx, 1)
			So(err, ShouldBeNil)

			botCount := 0
			riderSeen := false
			for _, s := range table {
				if s.Bot {
					botCount++
				}
				if s.ParticipantID == "r1" {
					riderSeen = true
				}
			}
			So(botCount, ShouldBeLessThanOrEqualTo, 5)
			So(riderSeen, ShouldBeTrue)
		})
	})
}

func TestProcessBatch_Triggers(t *testing.T) {
	Convey("Given a rider with an equipped trigger", t, func() {
		svc, store := newTestService(t)
		ctx := context.Background()

		rider := model.NewRider("r1", "Alex Reyes")
		rider.Triggers.Equipped = []string{"sprintPrimer"}
		So(store.PutRider(ctx, rider), ShouldBeNil)

		_, err := svc.ProcessBatch(ctx, 1, raceRows("r1", 1, 10))
		So(err, ShouldBeNil)

		Convey("Then the trigger fires and rests", func() {
			got, err := store.Rider(ctx, "r1")
			So(err, ShouldBeNil)
			So(got.Result(1).TriggerBonus, ShouldEqual, 4)
			So(len(got.Result(1).TriggersApplied), ShouldEqual, 1)
			So(got.Triggers.Resting["sprintPrimer"], ShouldBeTrue)
			So(got.TotalPoints, ShouldEqual, 65+4)
		})

		Convey("When the next event is raced while the trigger rests", func() {
			_, err := svc.ProcessBatch(ctx, 2, raceRows("r1", 1, 12))
			So(err, ShouldBeNil)

			Convey("Then it contributes nothing and comes off rest", func() {
				got, err := store.Rider(ctx, "r1")
				So(err, ShouldBeNil)
				So(got.Result(2).TriggerBonus, ShouldEqual, 0)
				So(got.Triggers.Resting["sprintPrimer"], ShouldBeFalse)
			})
		})
	})
}

func TestProcessBatch_Tour(t *testing.T) {
	Convey("Given a rider positioned at the tour stage", t, func() {
		svc, store := newTestService(t)
		ctx := context.Background()

		rider := model.NewRider("r1", "Alex Reyes")
		rider.CurrentStage = 9
		So(store.PutRider(ctx, rider), ShouldBeNil)

		Convey("When the tour is raced in sequence", func() {
			for _, ev := range []int{13, 14} {
				report, err := svc.ProcessBatch(ctx, ev, raceRows("r1", 1, 10))
				So(err, ShouldBeNil)
				So(report.Processed, ShouldEqual, 1)
			}

			got, err := store.Rider(ctx, "r1")
			So(err, ShouldBeNil)

			Convey("Then interim stages carry a provisional classification", func() {
				gc := got.Result(14).GC
				So(gc, ShouldNotBeNil)
				So(gc.Provisional, ShouldBeTrue)
				So(gc.StagesIncluded, ShouldEqual, 2)
				So(gc.Position, ShouldEqual, 1)
				So(got.SeasonComplete, ShouldBeFalse)
			})

			Convey("When the final stage completes the tour", func() {
				_, err := svc.ProcessBatch(ctx, 15, raceRows("r1", 1, 10))
				So(err, ShouldBeNil)

				got, err := store.Rider(ctx, "r1")
				So(err, ShouldBeNil)
				res := got.Result(15)

				Convey("Then the aggregate is final and pays GC honors", func() {
					So(res.GC, ShouldNotBeNil)
					So(res.GC.Provisional, ShouldBeFalse)
					So(res.GC.Position, ShouldEqual, 1)
					So(res.HasAward("gcGoldMedal"), ShouldBeTrue)
					So(res.BonusPoints, ShouldEqual, 50)
					So(got.SeasonComplete, ShouldBeTrue)
				})
			})
		})

		Convey("When a tour stage is raced out of order", func() {
			report, err := svc.ProcessBatch(ctx, 14, raceRows("r1", 1, 10))
			So(err, ShouldBeNil)

			Convey("Then it is rejected", func() {
				So(report.Skipped, ShouldEqual, 1)
				got, err := store.Rider(ctx, "r1")
				So(err, ShouldBeNil)
				So(got.TotalEvents, ShouldEqual, 0)
			})
		})
	})
}
