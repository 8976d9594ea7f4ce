package config

// this holds the resolved configuration values from CLI
var (
	Manifest        string   // path to the season manifest
	Addr            string   // listen addr of the http server
	LogLevel        string   // sets the log level (zap log level values)
	LogFormat       string   // text vs json
	LogFilter       string   // zapfilter rules, e.g. "info,warn,error:* debug:scoring"
	ScoringTeams    []string // teams counting for individual field size and points
	TeamTopN        int      // number of racers counting for team points
	SeasonTeamClass string   // class used for season team points without class filter
	TeamTieBreak    string   // encounter or alphabetical
	CacheExpiration string   // duration parsed race files are kept
	Watch           bool     // invalidate parsed race files on change
	EnableTelemetry bool     // enable telemetry
)
