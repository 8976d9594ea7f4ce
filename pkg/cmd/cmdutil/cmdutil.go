// Package cmdutil holds setup code shared by the commands
package cmdutil

import (
	"os"
	"time"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/config"
	"github.com/mpapenbr/skirace-standings-go/pkg/loader"
	"github.com/mpapenbr/skirace-standings-go/pkg/scoring"
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger creates the logger from config values and installs it as default
func SetupLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true))
	}
	if filtered, err := logger.WithFilter(config.LogFilter); err == nil {
		logger = filtered
	} else {
		logger.Warn("Invalid log filter, ignoring", log.String("filter", config.LogFilter),
			log.ErrorField(err))
	}
	log.ResetDefault(logger)
	return logger
}

func NewEngine() (*scoring.Engine, error) {
	tb, err := scoring.ParseTieBreak(config.TeamTieBreak)
	if err != nil {
		return nil, err
	}
	opts := []scoring.Option{
		scoring.WithTopN(config.TeamTopN),
		scoring.WithSeasonTeamClass(config.SeasonTeamClass),
		scoring.WithTieBreak(tb),
	}
	if len(config.ScoringTeams) > 0 {
		opts = append(opts, scoring.WithScoringTeams(config.ScoringTeams...))
	}
	return scoring.NewEngine(opts...), nil
}

func NewLoader(opts ...loader.Option) *loader.Loader {
	expiration, err := time.ParseDuration(config.CacheExpiration)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 5m", log.ErrorField(err))
		expiration = 5 * time.Minute
	}
	return loader.New(config.Manifest,
		append([]loader.Option{loader.WithCacheExpiration(expiration)}, opts...)...)
}
