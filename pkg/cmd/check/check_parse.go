package check

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/skirace-standings-go/pkg/loader"
	"github.com/mpapenbr/skirace-standings-go/pkg/timing"
)

var showRacers bool

func NewCheckParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse file...",
		Short: "parse race files and log the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.SetupLogger()
			return checkParse(args)
		},
	}
	cmd.Flags().BoolVar(&showRacers, "racers", true, "log every racer")
	return cmd
}

func checkParse(files []string) error {
	var lastErr error
	for _, file := range files {
		race, err := loader.ReadRaceFile(file)
		if err != nil {
			log.Error("could not parse race file", log.String("file", file),
				log.ErrorField(err))
			lastErr = err
			continue
		}
		log.Info("race",
			log.String("file", file),
			log.String("name", race.Header.Name),
			log.String("date", race.Header.Date),
			log.String("location", race.Header.Location),
			log.String("discipline", race.Header.Discipline),
			log.Strings("courses", race.Header.Courses),
			log.Int("racers", len(race.Racers)))
		if !showRacers {
			continue
		}
		for i := range race.Racers {
			r := &race.Racers[i]
			log.Info("racer",
				log.String("bib", r.Bib),
				log.String("name", r.FullName()),
				log.String("team", r.Team),
				log.String("gender", string(r.Gender)),
				log.String("class", r.Class),
				log.String("run1", timing.FormatVal(r.Run1)),
				log.String("run2", timing.FormatVal(r.Run2)),
				log.String("total", timing.FormatVal(r.TotalTime)),
				log.String("status", string(r.Status)))
		}
	}
	return lastErr
}
