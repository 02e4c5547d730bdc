package config_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/veloforge/paceline/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DataPath, convey.ShouldEqual, "paceline.db")
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
			convey.So(cfg.Season, convey.ShouldEqual, 1)
			convey.So(cfg.BotLimit, convey.ShouldEqual, 80)
			convey.So(cfg.DefaultBotRating, convey.ShouldEqual, 900)
		})
	})
}
