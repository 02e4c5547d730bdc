package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/veloforge/paceline/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.DataPath, convey.ShouldEqual, "paceline.db")
				convey.So(cfg.Season, convey.ShouldEqual, 1)
				convey.So(cfg.BotLimit, convey.ShouldEqual, 80)
				convey.So(cfg.DefaultBotRating, convey.ShouldEqual, 900)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PACELINE_DATA_PATH", "/tmp/career.db")
			_ = os.Setenv("PACELINE_SEASON", "2")
			_ = os.Setenv("PACELINE_BOT_LIMIT", "40")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataPath, convey.ShouldEqual, "/tmp/career.db")
				convey.So(cfg.Season, convey.ShouldEqual, 2)
				convey.So(cfg.BotLimit, convey.ShouldEqual, 40)
				convey.So(cfg.DefaultBotRating, convey.ShouldEqual, 900) // untouched default
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
log_level: "debug"
data_path: "/var/lib/paceline/career.db"
season: 3
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PACELINE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/var/lib/paceline/career.db")
				convey.So(cfg.Season, convey.ShouldEqual, 3)
				convey.So(cfg.BotLimit, convey.ShouldEqual, 80) // from defaults
			})
		})

		convey.Convey("When file and environment variables overlap", func() {
			yamlContent := `
data_path: "/var/lib/paceline/career.db"
season: 3
bot_limit: 60
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PACELINE_CONFIG", tmpFile)
			_ = os.Setenv("PACELINE_SEASON", "4")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Season, convey.ShouldEqual, 4)                              // env
				convey.So(cfg.DataPath, convey.ShouldEqual, "/var/lib/paceline/career.db") // file
				convey.So(cfg.BotLimit, convey.ShouldEqual, 60)                           // file
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("PACELINE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the data path is blank", func() {
			_ = os.Setenv("PACELINE_DATA_PATH", "   ")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "data_path")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the season is not positive", func() {
			_ = os.Setenv("PACELINE_SEASON", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PACELINE_CONFIG",
		"PACELINE_LOG_LEVEL",
		"PACELINE_DATA_PATH",
		"PACELINE_METRICS_ADDR",
		"PACELINE_SEASON",
		"PACELINE_BOT_LIMIT",
		"PACELINE_DEFAULT_BOT_RATING",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "paceline-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
